package model

// 可视化投影结构，仅由缓存/接口层消费，不落库

type NodePosition struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type NodeData struct {
	Label           string     `json:"label"`
	Username        string     `json:"username"`
	Age             int        `json:"age"`
	PopularityScore float64    `json:"popularityScore"`
	Hobbies         StringList `json:"hobbies"`
}

// GraphNode type 按分数阈值取 highScore / lowScore，前端据此选择节点组件
type GraphNode struct {
	ID       string       `json:"id"`
	Type     string       `json:"type"`
	Data     NodeData     `json:"data"`
	Position NodePosition `json:"position"`
}

type EdgeStyle struct {
	Stroke      string `json:"stroke"`
	StrokeWidth int    `json:"strokeWidth"`
}

// GraphEdge 每条逻辑好友边只输出一次，与底层的成对行无关
type GraphEdge struct {
	ID     string    `json:"id"`
	Source string    `json:"source"`
	Target string    `json:"target"`
	Type   string    `json:"type"`
	Style  EdgeStyle `json:"style"`
}

type GraphData struct {
	Nodes []GraphNode `json:"nodes"`
	Edges []GraphEdge `json:"edges"`
}
