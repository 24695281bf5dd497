package plugin

import (
	"flowstudio/internal/api/models"
	"flowstudio/internal/editor/socket"
)

// NewForEach declares the loop node. Next fires after the last iteration,
// FirstAction is the entry of the per-iteration body and DataTarget carries the
// current element.
func NewForEach(sockets SocketRegistry, engine *TemplateEngine) *Component {
	return &Component{
		kind:  models.NodeKindForEach,
		title: "Loop",
		topology: Topology{
			Inputs: []Port{
				{Title: "Prev", Socket: socket.Prev, Multiple: true},
				{Title: "DataSource", Socket: socket.DataSource},
			},
			Outputs: []Port{
				{Title: "Next", Socket: socket.Next},
				{Title: "FirstAction", Socket: socket.LoopBody},
				{Title: "DataTarget", Socket: socket.DataTarget},
			},
		},
		sockets: sockets,
		engine:  engine,
	}
}

func NewAction(sockets SocketRegistry, engine *TemplateEngine) *Component {
	return &Component{
		kind:  models.NodeKindAction,
		title: "Action",
		topology: Topology{
			Inputs: []Port{
				{Title: "Prev", Socket: socket.Prev, Multiple: true},
				{Title: "DataSource", Socket: socket.DataSource},
			},
			Outputs: []Port{
				{Title: "Next", Socket: socket.Next},
				{Title: "DataTarget", Socket: socket.DataTarget},
			},
		},
		sockets: sockets,
		engine:  engine,
	}
}

// NewReturn declares the terminal node; it ends the flow with its data source.
func NewReturn(sockets SocketRegistry, engine *TemplateEngine) *Component {
	return &Component{
		kind:  models.NodeKindReturn,
		title: "Return",
		topology: Topology{
			Inputs: []Port{
				{Title: "Prev", Socket: socket.Prev, Multiple: true},
				{Title: "DataSource", Socket: socket.DataSource},
			},
		},
		sockets: sockets,
		engine:  engine,
	}
}
