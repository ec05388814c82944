package notification

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	codeLetters  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	codeAttempts = 10
)

// randomCode draws a fresh "ABC12345" style code from crypto/rand.
func randomCode() (string, error) {
	buf := make([]byte, 3)
	for i := range buf {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(codeLetters))))
		if err != nil {
			return "", fmt.Errorf("generate code: %w", err)
		}
		buf[i] = codeLetters[n.Int64()]
	}
	n, err := rand.Int(rand.Reader, big.NewInt(100000))
	if err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}
	return fmt.Sprintf("%s%05d", buf, n.Int64()), nil
}

// GenerateCode returns a code not currently held by any live row,
// retrying on collision. exists is queried per attempt.
func GenerateCode(ctx context.Context, exists func(ctx context.Context, code string) (bool, error)) (string, error) {
	for i := 0; i < codeAttempts; i++ {
		code, err := randomCode()
		if err != nil {
			return "", err
		}
		taken, err := exists(ctx, code)
		if err != nil {
			return "", err
		}
		if !taken {
			return code, nil
		}
	}
	return "", ErrCodeExhausted
}
