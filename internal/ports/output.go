package ports

type DocumentSinkPort interface {
	WriteDocument(path string, document any) error
}
