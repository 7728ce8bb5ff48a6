// Package hcl provides the concrete HCL implementation of config.Loader.
// It is responsible for file parsing, schema decoding and the CTY-to-Go
// translation of level values.
//
// A level file looks like:
//
//	settings {
//	  tick  = "420ms"
//	  store = ".robotrack/tracks.hcl"
//	}
//
//	track {
//	  layout = [
//	    ".....",
//	    ".....",
//	    ".....",
//	    "#####",
//	  ]
//	}
//
//	program {
//	  instructions = ["forward", "loop", "left", "right", "loop"]
//	}
//
//	socketio {
//	  url = "http://localhost:3000/socket.io/"
//	}
package hcl
