package constants

// 异步任务类型常量
const (
	TaskFeedInvalidate = "feed:invalidate"
)

// 队列名称常量
const (
	QueueDefault = "default"
)

// 文章字段长度限制
const (
	PostTitleMaxLength     = 256
	CategoryTitleMaxLength = 256
	LocationNameMaxLength  = 256
	UsernameMaxLength      = 150
	SlugMaxLength          = 64
)

// 图片上传场景
const (
	UploadScenePost   = "post"
	UploadSceneCommon = "common"
)

// 上传存储驱动
const (
	UploadDriverLocal = "local"
	UploadDriverMinio = "minio"
)

// 进程运行模式
const (
	AppModeAll    = "all"
	AppModeAPI    = "api"
	AppModeWorker = "worker"
)
