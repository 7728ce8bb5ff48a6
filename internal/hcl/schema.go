package hcl

import "github.com/hashicorp/hcl/v2"

// fileRoot is used to decode all possible top-level blocks from any file.
// Unknown blocks are an error.
type fileRoot struct {
	Settings []*settingsBlock `hcl:"settings,block"`
	Tracks   []*trackBlock    `hcl:"track,block"`
	Programs []*programBlock  `hcl:"program,block"`
	SocketIO []*socketIOBlock `hcl:"socketio,block"`
}

type settingsBlock struct {
	// Tick is either a duration string or a number of milliseconds.
	Tick  hcl.Expression `hcl:"tick,optional"`
	Store *string        `hcl:"store,optional"`
}

type trackBlock struct {
	// Layout is either a list of row drawings or a matrix of bools.
	Layout hcl.Expression `hcl:"layout"`
}

type programBlock struct {
	Instructions []string `hcl:"instructions,optional"`
	Source       *string  `hcl:"source,optional"`
}

type socketIOBlock struct {
	URL                string         `hcl:"url"`
	Namespace          *string        `hcl:"namespace,optional"`
	InsecureSkipVerify *bool          `hcl:"insecure_skip_verify,optional"`
	ConnectTimeout     hcl.Expression `hcl:"connect_timeout,optional"`
}
