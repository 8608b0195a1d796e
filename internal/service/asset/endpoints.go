package asset

import "strings"

// 上传入口
const (
	EndpointCourseImage    = "courseImage"
	EndpointChapterVideo   = "chapterVideo"
	EndpointNoteAttachment = "noteAttachment"
	EndpointProfileImage   = "profileImage"
	EndpointMessageFile    = "messageFile"
)

const mb = 1 << 20

// Endpoint 上传入口的限制
type Endpoint struct {
	Name    string   `json:"name"`
	MaxSize int64    `json:"maxSize"`
	Kinds   []string `json:"kinds"` // image、video、pdf，为空表示不限类型
}

var endpoints = map[string]Endpoint{
	EndpointCourseImage:    {Name: EndpointCourseImage, MaxSize: 4 * mb, Kinds: []string{"image"}},
	EndpointChapterVideo:   {Name: EndpointChapterVideo, MaxSize: 512 * mb, Kinds: []string{"video"}},
	EndpointNoteAttachment: {Name: EndpointNoteAttachment, MaxSize: 16 * mb},
	EndpointProfileImage:   {Name: EndpointProfileImage, MaxSize: 2 * mb, Kinds: []string{"image"}},
	EndpointMessageFile:    {Name: EndpointMessageFile, MaxSize: 8 * mb, Kinds: []string{"image", "pdf"}},
}

// Lookup 查找上传入口
func Lookup(name string) (Endpoint, bool) {
	ep, ok := endpoints[name]
	return ep, ok
}

// Allows 判断内容类型是否符合入口限制
func (e Endpoint) Allows(contentType string) bool {
	if len(e.Kinds) == 0 {
		return true
	}
	mediaType := strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0])
	for _, kind := range e.Kinds {
		switch kind {
		case "image", "video":
			if strings.HasPrefix(mediaType, kind+"/") {
				return true
			}
		case "pdf":
			if mediaType == "application/pdf" {
				return true
			}
		}
	}
	return false
}
