// Command streamfit fits an evolving set of weighted balls to a stream of
// points. Default mode reads points from stdin and writes model snapshots
// to stdout, one line each; --service mode instead exposes /ws/points and
// /ws/models over WebSocket.
package main

import (
	"github.com/streamfit/streamfit/cmd/streamfit/cmd"
)

func main() {
	cmd.Execute()
}
