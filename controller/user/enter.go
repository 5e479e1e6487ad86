package user

type ApiGroup struct {
	ClassifyApi ClassifyApi
	ResolveApi  ResolveApi
}
