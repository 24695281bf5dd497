package mapper

import (
	"flowstudio/internal/api/handler/request"
	"flowstudio/internal/api/handler/response"
	"flowstudio/internal/api/models"
	"flowstudio/internal/editor/plugin"
)

type FlowMapper struct{}

func NewFlowMapper() FlowMapper {
	return FlowMapper{}
}

func (m FlowMapper) CreateFlowNode(req request.CreateFlowNode) models.FlowNode {
	return models.FlowNode{
		Kind:        models.NodeKind(req.Kind),
		Name:        req.Name,
		Xpos:        req.Xpos,
		Ypos:        req.Ypos,
		ContainerID: req.ContainerID,
	}
}

func (m FlowMapper) ToFlowNodeResponse(n models.FlowNode) response.FlowNode {
	return response.FlowNode{
		ID:          n.ID,
		Kind:        n.Kind,
		Name:        n.Name,
		Xpos:        n.Xpos,
		Ypos:        n.Ypos,
		ContainerID: n.ContainerID,
		IsStartNode: plugin.IsStartNode(&n),
		CreatedAt:   n.CreatedAt,
	}
}

func (m FlowMapper) ToFlowContainerResponse(c models.FlowContainer) response.FlowContainer {
	nodes := make([]response.FlowNode, 0, len(c.Nodes))
	for _, n := range c.Nodes {
		nodes = append(nodes, m.ToFlowNodeResponse(n))
	}
	return response.FlowContainer{
		ID:          c.ID,
		Name:        c.Name,
		StartNodeID: c.StartNodeID,
		Nodes:       nodes,
	}
}
