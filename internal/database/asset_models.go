package database

// Asset 上传文件元数据
// 文件内容保存在对象存储或本地目录中，这里只记录访问地址和校验信息
type Asset struct {
	Base
	OwnerID     string `gorm:"not null;size:64;index" json:"ownerId"`       // 上传者
	Endpoint    string `gorm:"not null;size:50" json:"endpoint"`            // 上传入口，如 courseImage
	FileName    string `gorm:"not null;size:255" json:"name"`               // 原始文件名
	ContentType string `gorm:"size:100" json:"type"`                        // MIME类型
	Size        int64  `gorm:"not null" json:"size"`                        // 字节数
	Hash        string `gorm:"not null;size:64;index" json:"hash"`          // SHA256
	StorageKey  string `gorm:"not null;size:500" json:"-"`                  // 存储中的对象键
	Provider    string `gorm:"not null;size:20" json:"provider"`            // local、aliyun、tencent、qiniu
	URL         string `gorm:"not null;size:1000" json:"url"`               // 访问地址
}

// TableName 指定Asset模型对应的数据库表名
func (Asset) TableName() string {
	return "assets"
}
