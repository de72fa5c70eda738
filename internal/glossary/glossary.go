// ABOUTME: Terminology glossary pinning EN->ZH renderings of domain terms
// ABOUTME: Builtin machine-learning table, optional file overrides, prompt block
package glossary

import (
	"fmt"
	"os"
	"sort"
	"strings"
)

// builtin is the machine-learning terminology every run carries unless a
// glossary file overrides an entry. Terms that stay untranslated by
// convention map to their English form.
var builtin = map[string]string{
	"machine learning":               "机器学习",
	"deep learning":                  "深度学习",
	"neural network":                 "神经网络",
	"gradient descent":               "梯度下降",
	"loss function":                  "损失函数",
	"overfitting":                    "过拟合",
	"underfitting":                   "欠拟合",
	"regularization":                 "正则化",
	"backpropagation":                "反向传播",
	"convolutional neural network":   "卷积神经网络",
	"recurrent neural network":       "循环神经网络",
	"attention mechanism":            "注意力机制",
	"transformer":                    "Transformer",
	"supervised learning":            "监督学习",
	"unsupervised learning":          "无监督学习",
	"reinforcement learning":         "强化学习",
	"classification":                 "分类",
	"regression":                     "回归",
	"clustering":                     "聚类",
	"feature extraction":             "特征提取",
	"hyperparameter":                 "超参数",
	"batch normalization":            "批归一化",
	"dropout":                        "Dropout",
	"epoch":                          "轮次",
	"learning rate":                  "学习率",
	"activation function":            "激活函数",
	"cross-entropy":                  "交叉熵",
	"softmax":                        "Softmax",
	"embedding":                      "嵌入",
	"generative adversarial network": "生成对抗网络",
}

// Glossary maps source terms to the target rendering the model must use.
type Glossary struct {
	terms map[string]string
}

// Builtin returns the built-in terminology table.
func Builtin() *Glossary {
	terms := make(map[string]string, len(builtin))
	for k, v := range builtin {
		terms[k] = v
	}
	return &Glossary{terms: terms}
}

// Load returns the builtin glossary extended with entries from the file at
// path; file entries override builtin ones. An empty path returns the
// builtin table alone. A path that cannot be read or parsed is an error.
func Load(path string) (*Glossary, error) {
	g := Builtin()
	if path == "" {
		return g, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading glossary: %w", err)
	}
	for i, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		term, trans, ok := strings.Cut(line, "=")
		if !ok {
			return nil, fmt.Errorf("glossary %s: line %d: want \"term = translation\", got %q", path, i+1, line)
		}
		term = strings.TrimSpace(term)
		trans = strings.TrimSpace(trans)
		if term == "" || trans == "" {
			return nil, fmt.Errorf("glossary %s: line %d: empty term or translation", path, i+1)
		}
		g.terms[term] = trans
	}
	return g, nil
}

// Len returns the number of term mappings.
func (g *Glossary) Len() int { return len(g.terms) }

// PromptBlock renders the glossary for the system prompt, one sorted
// "term = translation" line per entry inside a <glossary> container. An
// empty glossary renders nothing.
func (g *Glossary) PromptBlock() string {
	if len(g.terms) == 0 {
		return ""
	}
	keys := make([]string, 0, len(g.terms))
	for k := range g.terms {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	sb.WriteString("<glossary>\n")
	for _, k := range keys {
		sb.WriteString(k)
		sb.WriteString(" = ")
		sb.WriteString(g.terms[k])
		sb.WriteByte('\n')
	}
	sb.WriteString("</glossary>")
	return sb.String()
}
