package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// ParticipantKind tags which identity space a conversation participant
// belongs to. Staff and applicant ids are separate namespaces; the tag is
// what keeps them from colliding.
type ParticipantKind string

const (
	ParticipantStaff     ParticipantKind = "user"
	ParticipantApplicant ParticipantKind = "candidate"
)

// Participant identifies one side of a conversation: a staff member or an
// applicant. The zero value is not a valid participant.
type Participant struct {
	Kind ParticipantKind
	ID   uint
}

// StaffParticipant wraps a staff member id.
func StaffParticipant(id uint) Participant {
	return Participant{Kind: ParticipantStaff, ID: id}
}

// ApplicantParticipant wraps a candidate id.
func ApplicantParticipant(id uint) Participant {
	return Participant{Kind: ParticipantApplicant, ID: id}
}

// ParseParticipant parses the wire form "user-<id>" or "candidate-<id>".
// Every external identifier goes through here; nothing else splits the
// string.
func ParseParticipant(s string) (Participant, error) {
	kindStr, idStr, ok := strings.Cut(s, "-")
	if !ok {
		return Participant{}, fmt.Errorf("malformed participant id %q", s)
	}
	kind := ParticipantKind(kindStr)
	if kind != ParticipantStaff && kind != ParticipantApplicant {
		return Participant{}, fmt.Errorf("unknown participant kind %q", kindStr)
	}
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil || id == 0 {
		return Participant{}, fmt.Errorf("malformed participant id %q", s)
	}
	return Participant{Kind: kind, ID: uint(id)}, nil
}

// String renders the canonical wire form.
func (p Participant) String() string {
	return fmt.Sprintf("%s-%d", p.Kind, p.ID)
}

// IsZero reports whether p is the invalid zero participant.
func (p Participant) IsZero() bool {
	return p.Kind == "" || p.ID == 0
}
