package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// otpRange покрывает все шестизначные коды: [100000, 999999].
const (
	otpMin   = 100000
	otpRange = 900000
)

// generateOTP возвращает шестизначный код выдачи,
// равномерно распределённый по всему диапазону.
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(otpRange))
	if err != nil {
		return "", fmt.Errorf("otp: %w", err)
	}
	return fmt.Sprintf("%d", n.Int64()+otpMin), nil
}
