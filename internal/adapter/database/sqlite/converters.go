package sqlite

import (
	"encoding/json"

	"ziluri/internal/core/domain"
)

// Memo images and check items are stored as JSON text columns.

func EncodeImages(images []string) (string, error) {
	if images == nil {
		images = []string{}
	}

	raw, err := json.Marshal(images)
	if err != nil {
		return "", err
	}

	return string(raw), nil
}

func DecodeImages(raw string) ([]string, error) {
	if raw == "" {
		return []string{}, nil
	}

	var images []string
	if err := json.Unmarshal([]byte(raw), &images); err != nil {
		return nil, err
	}

	return images, nil
}

func EncodeCheckItems(items []domain.MemoCheckItem) (string, error) {
	if items == nil {
		items = []domain.MemoCheckItem{}
	}

	raw, err := json.Marshal(items)
	if err != nil {
		return "", err
	}

	return string(raw), nil
}

func DecodeCheckItems(raw string) ([]domain.MemoCheckItem, error) {
	if raw == "" {
		return []domain.MemoCheckItem{}, nil
	}

	var items []domain.MemoCheckItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, err
	}

	return items, nil
}
