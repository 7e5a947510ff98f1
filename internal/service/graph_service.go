package service

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/d60-Lab/social-graph/internal/cache"
	"github.com/d60-Lab/social-graph/internal/model"
	"github.com/d60-Lab/social-graph/internal/repository"
)

const highScoreThreshold = 5

// GraphService 把用户/关系表投影成可渲染的 {nodes, edges} 结构，读穿 graph:data
type GraphService struct {
	users repository.UserRepository
	rels  repository.RelationshipRepository
	cache *cache.Cache
}

func NewGraphService(users repository.UserRepository, rels repository.RelationshipRepository, c *cache.Cache) *GraphService {
	return &GraphService{users: users, rels: rels, cache: c}
}

func (s *GraphService) GetGraphData(ctx context.Context) (*model.GraphData, error) {
	return cache.Cached(ctx, s.cache, cache.KeyGraph, s.build)
}

func (s *GraphService) build(ctx context.Context) (*model.GraphData, error) {
	users, err := s.users.ListByUsername(ctx)
	if err != nil {
		return nil, err
	}
	rels, err := s.rels.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	// 确定性网格布局：ceil(sqrt(n)) 列，按遍历序定行列，保证刷新后位置稳定
	gridSize := int(math.Ceil(math.Sqrt(float64(len(users)))))
	nodes := make([]model.GraphNode, 0, len(users))
	for i, u := range users {
		row := 0
		col := 0
		if gridSize > 0 {
			row = i / gridSize
			col = i % gridSize
		}
		nodeType := "lowScore"
		if u.PopularityScore > highScoreThreshold {
			nodeType = "highScore"
		}
		hobbies := u.Hobbies
		if hobbies == nil {
			hobbies = model.StringList{}
		}
		nodes = append(nodes, model.GraphNode{
			ID:   u.ID,
			Type: nodeType,
			Data: model.NodeData{
				Label:           fmt.Sprintf("%s (%d)", u.Username, u.Age),
				Username:        u.Username,
				Age:             u.Age,
				PopularityScore: u.PopularityScore,
				Hobbies:         hobbies,
			},
			Position: model.NodePosition{
				X: float64(col*200 + 50),
				Y: float64(row*150 + 50),
			},
		})
	}

	// 对称存储每条逻辑边是两行，按排序后的端点对去重，只输出一条
	seen := make(map[string]struct{}, len(rels)/2)
	edges := make([]model.GraphEdge, 0, len(rels)/2)
	for i, r := range rels {
		pair := []string{r.UserID, r.FriendID}
		sort.Strings(pair)
		key := pair[0] + "-" + pair[1]
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		edges = append(edges, model.GraphEdge{
			ID:     fmt.Sprintf("edge-%s-%s-%d", r.UserID, r.FriendID, i),
			Source: r.UserID,
			Target: r.FriendID,
			Type:   "smoothstep",
			Style:  model.EdgeStyle{Stroke: "#555", StrokeWidth: 2},
		})
	}

	return &model.GraphData{Nodes: nodes, Edges: edges}, nil
}
