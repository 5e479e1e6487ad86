package service

import (
	"gitee.com/taoJie_1/nlu-agent/service/admin"
	"gitee.com/taoJie_1/nlu-agent/service/user"
)

type ServiceGroup struct {
	UserServiceGroup  user.ServiceGroup
	AdminServiceGroup admin.ServiceGroup
}

var Service = new(ServiceGroup)

// Setup 组装服务树, 在所有外部客户端初始化完成后由initialize调用
func Setup() {
	Service.UserServiceGroup = user.NewServiceGroup()
	Service.AdminServiceGroup = admin.NewServiceGroup(Service.UserServiceGroup.CatalogService)
}
