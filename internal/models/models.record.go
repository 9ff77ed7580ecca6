// FilePath: internal/models/models.record.go
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// SensorRecord is one reading uploaded by a field device. Every field but ID is
// nullable: a value the device omitted stays nil instead of becoming zero.
type SensorRecord struct {
	ID           int64    `json:"id" db:"id"`
	PacketNumber *int64   `json:"numero_pacote" db:"numero_pacote"`
	Farm         *string  `json:"fazenda" db:"fazenda"`
	DeviceID     *string  `json:"dispositivo_id" db:"dispositivo_id"`
	Temperature  *float64 `json:"temperatura" db:"temperatura"`
	U1           *float64 `json:"u1" db:"u1"`
	U2           *float64 `json:"u2" db:"u2"`
	U3           *float64 `json:"u3" db:"u3"`
	U4           *float64 `json:"u4" db:"u4"`
	U5           *float64 `json:"u5" db:"u5"`
	Fruit        *string  `json:"fruto" db:"fruto"`
	Date         *string  `json:"data" db:"data"`
	Time         *string  `json:"hora" db:"hora"`
	LocalIP      *string  `json:"ip_local" db:"ip_local"`
	MAC          *string  `json:"mac" db:"mac"`
}

// RecordColumns is the fixed export column order.
var RecordColumns = []string{
	"id", "numero_pacote", "fazenda", "dispositivo_id", "temperatura",
	"u1", "u2", "u3", "u4", "u5", "fruto",
	"data", "hora", "ip_local", "mac",
}

// ParseSensorRecord decodes an ingestion body. Only a body that is not a JSON
// object is an error; fields with unusable values are left nil.
func ParseSensorRecord(body []byte) (*SensorRecord, error) {
	var fields map[string]json.RawMessage
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&fields); err != nil {
		return nil, fmt.Errorf("body is not a JSON object: %w", err)
	}
	if fields == nil {
		return nil, fmt.Errorf("body is not a JSON object: null")
	}

	return &SensorRecord{
		PacketNumber: lenientInt(fields["numero_pacote"]),
		Farm:         lenientText(fields["fazenda"]),
		DeviceID:     lenientText(fields["dispositivo_id"]),
		Temperature:  lenientFloat(fields["temperatura"]),
		U1:           lenientFloat(fields["u1"]),
		U2:           lenientFloat(fields["u2"]),
		U3:           lenientFloat(fields["u3"]),
		U4:           lenientFloat(fields["u4"]),
		U5:           lenientFloat(fields["u5"]),
		Fruit:        lenientText(fields["fruto"]),
		Date:         lenientText(fields["data"]),
		Time:         lenientText(fields["hora"]),
		LocalIP:      lenientText(fields["ip_local"]),
		MAC:          lenientText(fields["mac"]),
	}, nil
}

// Values returns the record's fields as text in RecordColumns order.
// NULLs render empty; tabs and line breaks inside text become spaces.
func (r *SensorRecord) Values() []string {
	return []string{
		strconv.FormatInt(r.ID, 10),
		formatInt(r.PacketNumber),
		formatText(r.Farm),
		formatText(r.DeviceID),
		formatFloat(r.Temperature),
		formatFloat(r.U1),
		formatFloat(r.U2),
		formatFloat(r.U3),
		formatFloat(r.U4),
		formatFloat(r.U5),
		formatText(r.Fruit),
		formatText(r.Date),
		formatText(r.Time),
		formatText(r.LocalIP),
		formatText(r.MAC),
	}
}

func lenientText(raw json.RawMessage) *string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil
		}
		return &s
	case 'n', '{', '[':
		return nil
	default:
		// numbers and booleans keep their literal text
		s := string(raw)
		return &s
	}
}

func lenientFloat(raw json.RawMessage) *float64 {
	n, ok := numberText(raw)
	if !ok {
		return nil
	}
	f, err := strconv.ParseFloat(n, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

func lenientInt(raw json.RawMessage) *int64 {
	n, ok := numberText(raw)
	if !ok {
		return nil
	}
	if i, err := strconv.ParseInt(n, 10, 64); err == nil {
		return &i
	}
	f, err := strconv.ParseFloat(n, 64)
	if err != nil || f != math.Trunc(f) || f >= math.MaxInt64 || f < math.MinInt64 {
		return nil
	}
	i := int64(f)
	return &i
}

// numberText extracts a JSON number, or a string holding one.
func numberText(raw json.RawMessage) (string, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return "", false
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", false
		}
		s = strings.TrimSpace(s)
		return s, s != ""
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", false
	}
	return n.String(), true
}

func formatInt(v *int64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatInt(*v, 10)
}

func formatFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

var exportReplacer = strings.NewReplacer("\t", " ", "\r\n", " ", "\n", " ", "\r", " ")

func formatText(v *string) string {
	if v == nil {
		return ""
	}
	return exportReplacer.Replace(*v)
}
