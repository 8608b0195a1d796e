package database

// Sprint 看板，归属于一个组织
type Sprint struct {
	Base
	OrgID    string `gorm:"not null;size:64;index" json:"orgId"`
	Title    string `gorm:"not null;size:200" json:"title"`
	ImageURL string `gorm:"size:1000" json:"imageUrl"`
	Lists    []List `gorm:"foreignKey:SprintID;constraint:OnDelete:CASCADE" json:"lists,omitempty"`
}

// TableName 指定Sprint模型对应的数据库表名
func (Sprint) TableName() string {
	return "sprints"
}

// List 看板中的列
type List struct {
	Base
	SprintID string `gorm:"not null;size:36;index" json:"sprintId"`
	Title    string `gorm:"not null;size:200" json:"title"`
	Order    int    `gorm:"column:sort_order;not null;default:0" json:"order"`
	Cards    []Card `gorm:"foreignKey:ListID;constraint:OnDelete:CASCADE" json:"cards,omitempty"`
}

// TableName 指定List模型对应的数据库表名
func (List) TableName() string {
	return "lists"
}

// Card 列中的卡片
type Card struct {
	Base
	ListID      string `gorm:"not null;size:36;index" json:"listId"`
	Title       string `gorm:"not null;size:200" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	Order       int    `gorm:"column:sort_order;not null;default:0" json:"order"`
}

// TableName 指定Card模型对应的数据库表名
func (Card) TableName() string {
	return "cards"
}
