package utils

import (
	"fmt"
	"math/rand/v2"
)

const upperLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// RoomID 三位数字加两位大写字母，例如 042QZ。
func RoomID() string {
	return fmt.Sprintf("%03d%s", rand.IntN(1000), RandSeq(upperLetters, 2))
}

// RandSeq 从 alphabet 中随机取 n 个字符。
func RandSeq(alphabet string, n int) string {
	if n <= 0 || alphabet == "" {
		return ""
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = alphabet[rand.IntN(len(alphabet))]
	}
	return string(b)
}
