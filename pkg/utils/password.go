package utils

import (
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword bcrypt 自带随机盐，同一明文每次结果不同
func HashPassword(pw string) string {
	b, _ := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	return string(b)
}

func CheckPassword(pw, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(pw)) == nil
}

// ValidPassword 密码策略：4-10 位，必须含数字、小写、大写
func ValidPassword(pw string) bool {
	if len(pw) < 4 || len(pw) > 10 {
		return false
	}
	var digit, lower, upper bool
	for _, r := range pw {
		switch {
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		}
	}
	return digit && lower && upper
}
