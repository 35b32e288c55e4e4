// server/domain/folder.go
package domain

type Folder struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// FolderFields is the request body accepted by folder create and update.
type FolderFields struct {
	Name *string `json:"name"`
}

func (f FolderFields) MissingField() string {
	if f.Name == nil {
		return "name"
	}
	return ""
}
