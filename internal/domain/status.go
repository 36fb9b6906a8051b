package domain

import "strings"

// Area status values as stored and as surfaced to the map UI, which colors
// pins by status.
const (
	StatusScheduled = "agendado"
	StatusOnTrack   = "em_dia"
	StatusOverdue   = "atrasado"
	StatusDone      = "concluido"
)

var statusLabels = map[string]string{
	StatusScheduled: "Agendado",
	StatusOnTrack:   "Em dia",
	StatusOverdue:   "Atrasado",
	StatusDone:      "Concluído",
}

// StatusLabel returns a human-readable label for an area status.
func StatusLabel(status string) string {
	if label, ok := statusLabels[status]; ok {
		return label
	}

	return "Sem status"
}

// ParseStatus returns the canonical status value for a given label or
// value (case-insensitive).
func ParseStatus(s string) (string, bool) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for value, label := range statusLabels {
		if needle == value || needle == strings.ToLower(label) {
			return value, true
		}
	}

	return "", false
}
