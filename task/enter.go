package task

// Manager 后台任务的统一入口, 供定时器和 -a 命令行模式调用。
// 具体业务逻辑都在service层, 这里只做调度和错误上抛。
type Manager struct{}

func NewManager() *Manager {
	return &Manager{}
}
