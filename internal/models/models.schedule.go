// FilePath: internal/models/models.schedule.go
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// ScheduleRow is one on/off timer line as stored in the schedule table.
type ScheduleRow struct {
	ID      int64  `json:"id" db:"id"`
	Line    int64  `json:"linha" db:"linha"`
	TurnOn  string `json:"hora_ligar" db:"hora_ligar"`
	TurnOff string `json:"hora_desligar" db:"hora_desligar"`
	Days    string `json:"dias" db:"dias"`
}

// ScheduleBatch is the body of a schedule save: the full table as read from the device's SD card.
type ScheduleBatch struct {
	Rows []ScheduleEntry `json:"horarios"`
}

// ScheduleEntry is one row of a ScheduleBatch before it is flattened for storage.
type ScheduleEntry struct {
	Line    *int64            `json:"linha"`
	TurnOn  *string           `json:"hora_ligar"`
	TurnOff *string           `json:"hora_desligar"`
	Days    []json.RawMessage `json:"dias"`
}

// ParseScheduleBatch decodes a save body. The body must be a JSON object; a missing
// "horarios" key is an empty batch while an explicit null is rejected.
func ParseScheduleBatch(body []byte) ([]ScheduleRow, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, fmt.Errorf("invalid schedule batch: %w", err)
	}
	if fields == nil {
		return nil, fmt.Errorf("invalid schedule batch: body must be an object")
	}

	var entries []ScheduleEntry
	if raw, ok := fields["horarios"]; ok {
		if isNull(raw) {
			return nil, fmt.Errorf("invalid schedule batch: horarios must be a list")
		}
		if err := json.Unmarshal(raw, &entries); err != nil {
			return nil, fmt.Errorf("invalid schedule batch: %w", err)
		}
	}

	rows := make([]ScheduleRow, 0, len(entries))
	for i, entry := range entries {
		row, err := entry.toRow()
		if err != nil {
			return nil, fmt.Errorf("horarios[%d]: %w", i, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (e ScheduleEntry) toRow() (ScheduleRow, error) {
	switch {
	case e.Line == nil:
		return ScheduleRow{}, fmt.Errorf("linha is required")
	case e.TurnOn == nil:
		return ScheduleRow{}, fmt.Errorf("hora_ligar is required")
	case e.TurnOff == nil:
		return ScheduleRow{}, fmt.Errorf("hora_desligar is required")
	case e.Days == nil:
		return ScheduleRow{}, fmt.Errorf("dias is required")
	}

	days, err := JoinDays(e.Days)
	if err != nil {
		return ScheduleRow{}, err
	}
	return ScheduleRow{
		Line:    *e.Line,
		TurnOn:  *e.TurnOn,
		TurnOff: *e.TurnOff,
		Days:    days,
	}, nil
}

// JoinDays flattens day codes into the stored comma-joined form, keeping their order.
// Strings are taken verbatim, numbers by their literal text.
func JoinDays(days []json.RawMessage) (string, error) {
	codes := make([]string, 0, len(days))
	for _, raw := range days {
		raw = bytes.TrimSpace(raw)
		if len(raw) == 0 {
			return "", fmt.Errorf("empty day code")
		}
		switch raw[0] {
		case '"':
			var s string
			if err := json.Unmarshal(raw, &s); err != nil {
				return "", fmt.Errorf("invalid day code: %w", err)
			}
			codes = append(codes, s)
		case '{', '[', 'n', 't', 'f':
			return "", fmt.Errorf("invalid day code %s", raw)
		default:
			codes = append(codes, string(raw))
		}
	}
	return strings.Join(codes, ","), nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
