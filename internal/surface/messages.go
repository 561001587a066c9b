package surface

import (
	"encoding/json"

	"github.com/kc95kc/music-map/pkg/types"
)

// Outbound message types.
const (
	msgView    = "view"
	msgMarkers = "markers"
)

// Inbound message types the hub handles itself.
const (
	msgClick       = "click"
	msgMarkerClick = "marker.click"
)

// Commands the page sends beyond raw map clicks. The hub forwards these
// untouched to the registered command handler.
const (
	CmdSubmissionEnter    = "submission.enter"
	CmdSubmissionType     = "submission.type"
	CmdSubmissionField    = "submission.field"
	CmdSubmissionImage    = "submission.image"
	CmdSubmissionFinalize = "submission.finalize"
	CmdSubmissionCancel   = "submission.cancel"
	CmdDetailClose        = "detail.close"
	CmdPanelCollapse      = "panel.collapse"
)

// Command is a non-click client message handed to the command handler.
// Content carries decoded image bytes for submission.image.
type Command struct {
	Type     string
	Name     string
	Value    string
	Filename string
	Content  []byte
}

// outMessage is the envelope pushed to clients.
type outMessage struct {
	Type    string          `json:"type"`
	View    *types.Viewset  `json:"view,omitempty"`
	Pins    []types.Pin     `json:"pins,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// inMessage is the envelope received from clients. Content is base64 so
// image bytes survive the JSON framing.
type inMessage struct {
	Type     string  `json:"type"`
	Lat      float64 `json:"lat,omitempty"`
	Lon      float64 `json:"lon,omitempty"`
	PinID    string  `json:"id,omitempty"`
	Name     string  `json:"name,omitempty"`
	Value    string  `json:"value,omitempty"`
	Filename string  `json:"filename,omitempty"`
	Content  string  `json:"content,omitempty"`
}
