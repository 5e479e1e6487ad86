package admin

type ServiceGroup struct {
	TrainingService ITrainingService
	CatalogService  ICatalogService
}

func NewServiceGroup(invalidator catalogInvalidator) ServiceGroup {
	return ServiceGroup{
		TrainingService: NewTrainingService(),
		CatalogService:  NewCatalogService(invalidator),
	}
}
