package Models

type User struct {
	Id         uint   `json:"id" gorm:"primaryKey"`
	Name       string `json:"name" gorm:"not null"`
	Email      string `json:"email" gorm:"uniqueIndex;not null"`
	Password   []byte `json:"-"`
	Permission int    `json:"permission" gorm:"default:1"`
	IsApproved int    `json:"is_approved" gorm:"default:0"`
}
