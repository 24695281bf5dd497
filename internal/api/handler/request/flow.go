package request

type CreateFlowContainer struct {
	Name string `json:"name" validate:"required,max=255"`
}

type CreateFlowNode struct {
	Kind        string  `json:"kind" validate:"required,max=32"`
	Name        string  `json:"name" validate:"max=255"`
	Xpos        float32 `json:"xpos"`
	Ypos        float32 `json:"ypos"`
	ContainerID string  `json:"containerId" validate:"omitempty,uuid"`
}

type SetStartNode struct {
	NodeID string `json:"nodeId" validate:"required"`
}
