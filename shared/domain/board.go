package domain

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Board struct {
	Id          BoardId   `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	CreatedBy   Identity  `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// to iterate thru layers: handler -> service -> storage
type BoardCreationData struct {
	Id          BoardId
	Title       string
	Description *string
	CreatedBy   Identity
}

// BoardUpdateData carries only the fields being changed.
type BoardUpdateData struct {
	Title       *string
	Description *string
}

var boardIdRe = regexp.MustCompile(`^[a-zA-Z0-9-]{1,64}$`)

// ValidBoardId reports whether id can address a board.
func ValidBoardId(id string) bool {
	return boardIdRe.MatchString(id)
}

// NewBoardId returns a short random board id.
func NewBoardId() BoardId {
	return uuid.NewString()[:8]
}

// DefaultBoardTitle is the title given to auto-provisioned boards.
func DefaultBoardTitle(id BoardId) string {
	return fmt.Sprintf("Board %s", id)
}

const minBoardRefLen = 6

var nonIdChars = regexp.MustCompile(`[^a-zA-Z0-9-]`)

// ParseBoardRef extracts a board id from user input: either a board URL
// (last path segment) or a bare id. Ids shorter than six characters after
// cleaning are rejected.
func ParseBoardRef(ref string) (BoardId, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", fmt.Errorf("empty board reference")
	}

	candidate := ref
	if u, err := url.Parse(ref); err == nil && u.Scheme != "" && u.Host != "" {
		segments := strings.Split(strings.Trim(u.Path, "/"), "/")
		candidate = segments[len(segments)-1]
	}

	id := nonIdChars.ReplaceAllString(candidate, "")
	if len(id) < minBoardRefLen {
		return "", fmt.Errorf("board id %q is too short", id)
	}
	if !ValidBoardId(id) {
		return "", fmt.Errorf("invalid board id %q", id)
	}
	return id, nil
}
