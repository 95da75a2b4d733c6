// Package entity 定义领域实体
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User 用户实体
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Credits   int       `json:"credits"`
	BirthDate string    `json:"birth_date,omitempty"` // YYYY-MM-DD，可为空
	Books     []*Book   `json:"books"`                // 最新的书排在最前
	CreatedAt time.Time `json:"created_at"`
}

// NewUser 创建新用户并发放欢迎积分
func NewUser(name, birthDate string, welcomeGrant int) *User {
	return &User{
		ID:        uuid.New().String(),
		Name:      name,
		Credits:   welcomeGrant,
		BirthDate: birthDate,
		Books:     []*Book{},
		CreatedAt: time.Now(),
	}
}

// CanAfford 检查余额是否足以支付
func (u *User) CanAfford(cost int) bool {
	return u.Credits >= cost
}

// Debit 扣除积分
func (u *User) Debit(amount int) {
	u.Credits -= amount
}

// Credit 增加积分
func (u *User) Credit(amount int) {
	u.Credits += amount
}

// AddBook 将新书插入到藏书列表最前面
func (u *User) AddBook(book *Book) {
	u.Books = append([]*Book{book}, u.Books...)
}

// RemoveBook 按 ID 删除藏书，返回是否删除成功
func (u *User) RemoveBook(bookID string) bool {
	for i, b := range u.Books {
		if b.ID == bookID {
			u.Books = append(u.Books[:i], u.Books[i+1:]...)
			return true
		}
	}
	return false
}

// FindBook 按 ID 查找藏书
func (u *User) FindBook(bookID string) *Book {
	for _, b := range u.Books {
		if b.ID == bookID {
			return b
		}
	}
	return nil
}

// HasBirthdayOn 检查用户生日的月/日是否与给定日期相同
func (u *User) HasBirthdayOn(t time.Time) bool {
	if u.BirthDate == "" {
		return false
	}
	birth, err := time.Parse("2006-01-02", u.BirthDate)
	if err != nil {
		return false
	}
	return birth.Month() == t.Month() && birth.Day() == t.Day()
}
