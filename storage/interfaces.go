package storage

// DocumentPublisher is the interface any catalog output backend must satisfy.
// The document is either a *models.Catalog or a *models.Grouped.
type DocumentPublisher interface {
	Publish(doc any) error
}
