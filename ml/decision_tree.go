package ml

import (
    "errors"
    "fmt"
)

type DecisionTree struct {
    schema Schema
    nodes  []TreeNode
}

// TreeNode is one entry of the flattened tree. Value holds the per-class
// training sample counts that reached the node.
type TreeNode struct {
    FeatureIdx int       `json:"feature_idx"`
    Threshold  float64   `json:"threshold"`
    LeftChild  int       `json:"left_child"`
    RightChild int       `json:"right_child"`
    IsLeaf     bool      `json:"is_leaf"`
    Value      []float64 `json:"value"`
}

func NewDecisionTree(schema Schema, nodes []TreeNode) (*DecisionTree, error) {
    if len(nodes) == 0 {
        return nil, errors.New("tree has no nodes")
    }
    for idx, node := range nodes {
        if node.IsLeaf {
            if len(node.Value) != len(schema.Classes) {
                return nil, fmt.Errorf("leaf %d has %d class counts, want %d", idx, len(node.Value), len(schema.Classes))
            }
            if sum(node.Value) <= 0 {
                return nil, fmt.Errorf("leaf %d has no samples", idx)
            }
            continue
        }
        if node.FeatureIdx < 0 || node.FeatureIdx >= len(schema.Features) {
            return nil, fmt.Errorf("node %d: feature index %d out of range", idx, node.FeatureIdx)
        }
        // Children always follow their parent, which rules out cycles.
        if node.LeftChild <= idx || node.LeftChild >= len(nodes) ||
            node.RightChild <= idx || node.RightChild >= len(nodes) {
            return nil, fmt.Errorf("node %d: invalid children %d/%d", idx, node.LeftChild, node.RightChild)
        }
    }
    return &DecisionTree{schema: schema, nodes: nodes}, nil
}

func (dt *DecisionTree) Schema() Schema {
    return dt.schema
}

func (dt *DecisionTree) Predict(row []float64) (int, error) {
    probas, err := dt.PredictProba(row)
    if err != nil {
        return 0, err
    }
    return dt.schema.Classes[argmax(probas)], nil
}

func (dt *DecisionTree) PredictProba(row []float64) ([]float64, error) {
    leaf, err := dt.leaf(row)
    if err != nil {
        return nil, err
    }
    total := sum(leaf.Value)
    probas := make([]float64, len(leaf.Value))
    for i, count := range leaf.Value {
        probas[i] = count / total
    }
    return probas, nil
}

func (dt *DecisionTree) leaf(row []float64) (TreeNode, error) {
    if err := checkRow(dt.schema, row); err != nil {
        return TreeNode{}, err
    }
    idx := 0
    for {
        node := dt.nodes[idx]
        if node.IsLeaf {
            return node, nil
        }
        if row[node.FeatureIdx] <= node.Threshold {
            idx = node.LeftChild
        } else {
            idx = node.RightChild
        }
    }
}

func argmax(values []float64) int {
    best := 0
    for i := 1; i < len(values); i++ {
        if values[i] > values[best] {
            best = i
        }
    }
    return best
}

func sum(values []float64) float64 {
    total := 0.0
    for _, v := range values {
        total += v
    }
    return total
}
