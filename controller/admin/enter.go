package admin

type ApiGroup struct {
	TrainingApi TrainingApi
	CatalogApi  CatalogApi
}
