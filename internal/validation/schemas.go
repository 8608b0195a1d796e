package validation

// 看板相关请求

// CreateSprint 创建看板
type CreateSprint struct {
	Title    string `json:"title" validate:"required,min=3"`
	OrgID    string `json:"orgId" validate:"required"`
	ImageURL string `json:"imageUrl" validate:"omitempty,url"`
}

// UpdateSprint 修改看板标题
type UpdateSprint struct {
	ID    string `json:"id" validate:"required"`
	Title string `json:"title" validate:"required,min=3"`
}

// DeleteSprint 删除看板
type DeleteSprint struct {
	ID string `json:"id" validate:"required"`
}

// CreateList 在看板中新建列
type CreateList struct {
	Title    string `json:"title" validate:"required,min=3"`
	SprintID string `json:"sprintId" validate:"required"`
}

// UpdateList 修改列标题
type UpdateList struct {
	ID       string `json:"id" validate:"required"`
	SprintID string `json:"sprintId" validate:"required"`
	Title    string `json:"title" validate:"required,min=3"`
}

// DeleteList 删除列
type DeleteList struct {
	ID       string `json:"id" validate:"required"`
	SprintID string `json:"sprintId" validate:"required"`
}

// CopyList 复制列及其卡片
type CopyList struct {
	ID       string `json:"id" validate:"required"`
	SprintID string `json:"sprintId" validate:"required"`
}

// OrderItem 排序项
type OrderItem struct {
	ID    string `json:"id" validate:"required"`
	Order int    `json:"order" validate:"gte=0"`
}

// UpdateListOrder 批量调整列顺序
type UpdateListOrder struct {
	SprintID string      `json:"sprintId" validate:"required"`
	Items    []OrderItem `json:"items" validate:"required,min=1,dive"`
}

// CreateCard 新建卡片
type CreateCard struct {
	Title    string `json:"title" validate:"required,min=3"`
	ListID   string `json:"listId" validate:"required"`
	SprintID string `json:"sprintId" validate:"required"`
}

// UpdateCard 修改卡片，未提供的字段保持不变
type UpdateCard struct {
	ID          string  `json:"id" validate:"required"`
	SprintID    string  `json:"sprintId" validate:"required"`
	Title       *string `json:"title" validate:"omitempty,min=3"`
	Description *string `json:"description" validate:"omitempty,min=3"`
}

// CardOrderItem 卡片排序项，ListID 可以指向其他列
type CardOrderItem struct {
	ID     string `json:"id" validate:"required"`
	ListID string `json:"listId" validate:"required"`
	Order  int    `json:"order" validate:"gte=0"`
}

// UpdateCardOrder 批量调整卡片顺序
type UpdateCardOrder struct {
	SprintID string          `json:"sprintId" validate:"required"`
	Items    []CardOrderItem `json:"items" validate:"required,min=1,dive"`
}

// CopyCard 复制卡片
type CopyCard struct {
	ID       string `json:"id" validate:"required"`
	SprintID string `json:"sprintId" validate:"required"`
}

// DeleteCard 删除卡片
type DeleteCard struct {
	ID       string `json:"id" validate:"required"`
	SprintID string `json:"sprintId" validate:"required"`
}

// 笔记相关请求

// CreateNote 创建笔记
type CreateNote struct {
	Title string `json:"title" validate:"required,min=1,max=200"`
}

// UpdateNote 修改笔记
type UpdateNote struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description"`
	ImageURL    *string `json:"imageUrl"`
}

// CreateChapter 新建章节
type CreateChapter struct {
	Title string `json:"title" validate:"required,min=1,max=200"`
}

// UpdateChapter 修改章节
type UpdateChapter struct {
	Title    *string `json:"title" validate:"omitempty,min=1,max=200"`
	Content  *string `json:"content"`
	VideoURL *string `json:"videoUrl"`
	IsFree   *bool   `json:"isFree"`
}

// PositionItem 章节排序项
type PositionItem struct {
	ID       string `json:"id" validate:"required"`
	Position int    `json:"position" validate:"gte=0"`
}

// ReorderChapters 批量调整章节顺序
type ReorderChapters struct {
	Items []PositionItem `json:"items" validate:"required,min=1,dive"`
}

// ChapterProgress 更新学习进度
type ChapterProgress struct {
	IsCompleted bool `json:"isCompleted"`
}

// 用户相关请求

// UpdateProfile 修改资料
type UpdateProfile struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=100"`
	Bio      *string `json:"bio" validate:"omitempty,max=2000"`
	ImageURL *string `json:"imageUrl" validate:"omitempty,max=1000"`
}

// TutorApplication 导师申请
type TutorApplication struct {
	Bio        string   `json:"bio" validate:"required,min=20"`
	Subjects   []string `json:"subjects" validate:"required,min=1,dive,required"`
	Experience string   `json:"experience"`
}

// ReviewApplication 审核导师申请
type ReviewApplication struct {
	Approve bool   `json:"approve"`
	Note    string `json:"note" validate:"max=2000"`
}

// 群聊相关请求

// CreateGroup 创建群组
type CreateGroup struct {
	Name        string `json:"name" validate:"required,min=1,max=100"`
	Description string `json:"description" validate:"max=2000"`
	ImageURL    string `json:"imageUrl"`
}

// SendMessage 发送消息，文本和附件至少有一个
type SendMessage struct {
	Content string `json:"content" validate:"required_without=FileURL"`
	FileURL string `json:"fileUrl" validate:"omitempty,url"`
}

// EditMessage 编辑消息
type EditMessage struct {
	Content string `json:"content" validate:"required,min=1"`
}

// UpdateMemberRole 修改成员角色
type UpdateMemberRole struct {
	Role string `json:"role" validate:"required,oneof=admin moderator guest"`
}

// 智能助手请求

// ChatTurn 对话历史中的一轮
type ChatTurn struct {
	Role    string `json:"role" validate:"required,oneof=user assistant"`
	Content string `json:"content"`
}

// ChatSettings 模型参数，均为可选
type ChatSettings struct {
	Model        string   `json:"model"`
	Temperature  *float32 `json:"temperature" validate:"omitempty,gte=0,lte=2"`
	TopP         *float32 `json:"topP" validate:"omitempty,gte=0,lte=1"`
	MaxTokens    int32    `json:"maxTokens" validate:"gte=0"`
	SystemPrompt string   `json:"systemPrompt"`
}

// AIChat 智能助手请求体
type AIChat struct {
	UserMessage string       `json:"userMessage" validate:"required"`
	History     []ChatTurn   `json:"history" validate:"dive"`
	Settings    ChatSettings `json:"settings"`
}
