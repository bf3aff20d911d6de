// internal/daily/daily.go
//
// Secret word of the day.
// Everyone playing on the same UTC day guesses the same secret. The pick is
// a keyed hash of the day, so players can't work out tomorrow's word from
// the word list alone without the server's salt.
package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"io"
	"time"
)

// dayLayout is the key format of a challenge day, also stored in daily_results.date.
const dayLayout = "2006-01-02"

// Day returns the challenge day t falls on, as YYYY-MM-DD in UTC.
func Day(t time.Time) string {
	return t.UTC().Format(dayLayout)
}

// ParseDay validates a YYYY-MM-DD day key.
func ParseDay(s string) (time.Time, error) {
	return time.Parse(dayLayout, s)
}

// SecretIndex picks the position of the day's secret in a list of size
// words. It is 0 for an empty list.
func SecretIndex(day, salt string, words int) int {
	if words <= 0 {
		return 0
	}
	mac := hmac.New(sha256.New, []byte(salt))
	_, _ = io.WriteString(mac, day)
	pick := binary.BigEndian.Uint64(mac.Sum(nil))
	return int(pick % uint64(words))
}
