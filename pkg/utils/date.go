package utils

import "time"

// ParseDate lê AAAA-MM-DD; vazio devolve nil, que significa "sem limite"
func ParseDate(dateStr string) (*time.Time, error) {
	if dateStr == "" {
		return nil, nil
	}

	date, err := time.Parse(time.DateOnly, dateStr)
	if err != nil {
		return nil, err
	}

	return &date, nil
}
