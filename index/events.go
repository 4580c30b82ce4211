package index

import (
	"encoding/json"
	"fmt"
)

// Listener is a callback function that receives events during a scan.
type Listener func(fmt.Stringer)

func emit(l Listener, e fmt.Stringer) {
	if l != nil {
		l(e)
	}
}

func jsonString(v interface{}) string {
	b, _ := json.Marshal(map[string]interface{}{
		fmt.Sprintf("%T", v): v,
	})
	return string(b)
}

// EventArchiveFound is emitted for every package archive identified
// during a directory scan.
type EventArchiveFound struct {
	Package      string `json:"package,omitempty"`
	Version      string `json:"version,omitempty"`
	Architecture string `json:"architecture,omitempty"`
	Filename     string `json:"filename,omitempty"`
}

func (e EventArchiveFound) String() string { return jsonString(e) }

// EventFileSkipped is emitted when a directory entry is not a package
// archive.
type EventFileSkipped struct {
	Path   string `json:"path,omitempty"`
	Reason string `json:"reason,omitempty"`
}

func (e EventFileSkipped) String() string { return jsonString(e) }
