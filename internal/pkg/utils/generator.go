package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"telecare-service/internal/pkg/constvars"
	"time"

	"github.com/google/uuid"
)

func GenerateRequestID() string {
	return uuid.NewString()
}

var (
	localIDMu   sync.Mutex
	lastLocalMS int64
)

// GenerateLocalSyncID returns a client-generated booking id of the form
// local-<epoch-ms>. Ids must stay unique and ordered even when two bookings
// land in the same millisecond, hence the monotonic guard.
func GenerateLocalSyncID() string {
	localIDMu.Lock()
	defer localIDMu.Unlock()

	ms := time.Now().UnixMilli()
	if ms <= lastLocalMS {
		ms = lastLocalMS + 1
	}
	lastLocalMS = ms
	return fmt.Sprintf("%s%d", constvars.LocalSyncIDPrefix, ms)
}

var localSyncIDRegex = regexp.MustCompile(constvars.RegexLocalSyncID)

func IsLocalSyncID(id string) bool {
	return localSyncIDRegex.MatchString(id)
}

const meetingPasswordChars = "abcdefghijkmnpqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ23456789"

func GenerateMeetingPassword(length int) (string, error) {
	if length <= 0 {
		length = 10
	}
	max := big.NewInt(int64(len(meetingPasswordChars)))
	password := make([]byte, length)
	for i := range password {
		num, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		password[i] = meetingPasswordChars[num.Int64()]
	}
	return string(password), nil
}

func GenerateObjectName(appointmentKey, fileName string) string {
	timestamp := time.Now().Format("20060102_150405.000000000")
	ext := filepath.Ext(fileName)
	base := strings.TrimSuffix(filepath.Base(fileName), ext)
	return fmt.Sprintf("%s/%s_%s%s", appointmentKey, base, timestamp, ext)
}
