package cursor

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"os"
	"strings"
)

// Cursors are opaque keyset-pagination tokens: the sort key (epoch millis)
// plus a row id, base64-encoded and HMAC-signed so clients cannot forge
// positions.
type CursorData struct {
	Millis int64 `json:"millis"`
	ID     int64 `json:"id,omitempty"`
}

func hmacSignature(encoded string) string {
	mac := hmac.New(sha256.New, []byte(os.Getenv("CURSOR_SECRET_KEY")))
	mac.Write([]byte(encoded))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func verifySignature(encoded string, signature string) bool {
	expectedSignature := hmacSignature(encoded)
	return hmac.Equal([]byte(signature), []byte(expectedSignature))
}

func EncodeCursor(millis int64, id int64) string {
	data := CursorData{Millis: millis, ID: id}
	jsonData, _ := json.Marshal(data)
	encoded := base64.StdEncoding.EncodeToString(jsonData)
	signature := hmacSignature(encoded)

	return encoded + "." + signature
}

func DecodeCursor(token string) (int64, int64, error) {
	parts := strings.Split(token, ".")

	if len(parts) != 2 {
		return 0, 0, errors.New("invalid cursor format")
	}

	if !verifySignature(parts[0], parts[1]) {
		return 0, 0, errors.New("invalid cursor signature")
	}

	decoded, err := base64.StdEncoding.DecodeString(parts[0])

	if err != nil {
		return 0, 0, err
	}

	var cursor CursorData
	if err := json.Unmarshal(decoded, &cursor); err != nil {
		return 0, 0, err
	}

	return cursor.Millis, cursor.ID, nil
}
