package question

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/toeic-corpus/internal/app/corpusgen/ident"
	"github.com/heartmarshall/toeic-corpus/internal/domain"
)

// identitySource never reorders: Perm is the identity and Shuffle is a no-op.
type identitySource struct{}

func (identitySource) Perm(n int) []int {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	return p
}

func (identitySource) Shuffle(int, func(i, j int)) {}

// reverseSource reverses both permutations and shuffles.
type reverseSource struct{}

func (reverseSource) Perm(n int) []int {
	p := make([]int, n)
	for i := range p {
		p[i] = n - 1 - i
	}
	return p
}

func (reverseSource) Shuffle(n int, swap func(i, j int)) {
	for i := 0; i < n/2; i++ {
		swap(i, n-1-i)
	}
}

func word(w string, pos domain.PartOfSpeech, meanings ...string) domain.WordEntry {
	return domain.WordEntry{Word: w, POS: pos, Meanings: meanings, Collocation: w, Difficulty: 2}
}

var (
	v = domain.PartOfSpeechVerb
	n = domain.PartOfSpeechNoun

	target = word("accomplish", v, "完成", "達成")
	peers  = []domain.WordEntry{
		target,
		word("acquire", v, "獲得", "取得"),
		word("agenda", n, "議程"),
		word("adopt", v, "採用"),
		word("allocate", v, "分配"),
		word("analyze", v, "分析"),
	}
)

func TestGenerate_IdentitySource(t *testing.T) {
	t.Parallel()

	q := NewGenerator(identitySource{}).Generate(target, peers, 0)

	assert.Equal(t, []string{"accomplish", "acquire", "adopt", "allocate"}, q.Choices)
	assert.Equal(t, 0, q.AnswerIndex)
	assert.Equal(t, ident.New("q", "accomplish", 0), q.ID)
	assert.Equal(t, ident.Vocab("accomplish"), q.VocabID)
	assert.Equal(t, domain.QuestionTypeCloze, q.Type)
	assert.Equal(t, "The company decided to ____ in order to improve overall performance.", q.PromptEN)
	assert.Equal(t, "The company decided to accomplish in order to improve overall performance.", q.FullSentence)
	assert.Equal(t, "公司決定完成以提升整體績效。", q.PromptZH)
	assert.Equal(t, domain.LevelMedium, q.Level)
	assert.Equal(t, "accomplish", q.Word)
	assert.Equal(t, "完成、達成", q.Meaning)
}

func TestGenerate_ReverseSource(t *testing.T) {
	t.Parallel()

	q := NewGenerator(reverseSource{}).Generate(target, peers, 1)

	// same-POS pool: acquire, adopt, allocate, analyze; reversed perm picks analyze, allocate, adopt
	assert.Equal(t, []string{"adopt", "allocate", "analyze", "accomplish"}, q.Choices)
	assert.Equal(t, 3, q.AnswerIndex)
	assert.Equal(t, "Management plans to ____ before the end of the fiscal year.", q.PromptEN)
}

func TestGenerate_WidensPoolWhenFewSamePOS(t *testing.T) {
	t.Parallel()

	small := []domain.WordEntry{
		target,
		word("acquire", v, "獲得"),
		word("agenda", n, "議程"),
		word("appraisal", n, "評估"),
	}

	q := NewGenerator(identitySource{}).Generate(target, small, 0)

	assert.Equal(t, []string{"accomplish", "acquire", "agenda", "appraisal"}, q.Choices)
}

func TestGenerate_FewPeers(t *testing.T) {
	t.Parallel()

	alone := NewGenerator(identitySource{}).Generate(target, []domain.WordEntry{target}, 0)
	assert.Equal(t, []string{"accomplish"}, alone.Choices)
	assert.Equal(t, 0, alone.AnswerIndex)

	two := NewGenerator(identitySource{}).Generate(target, []domain.WordEntry{target, word("agenda", n, "議程")}, 0)
	assert.Equal(t, []string{"accomplish", "agenda"}, two.Choices)
}

func TestGenerate_Explanation(t *testing.T) {
	t.Parallel()

	small := []domain.WordEntry{target, word("agenda", n, "議程", "日程")}
	q := NewGenerator(reverseSource{}).Generate(target, small, 0)

	want := "正確答案：accomplish\n" +
		"意思：完成、達成\n\n" +
		"【題目解析】\n" +
		"完整句子：The company decided to accomplish in order to improve overall performance.\n" +
		"中文翻譯：公司決定完成以提升整體績效。\n" +
		"💡 語法提示：此處需要填入動詞，以完成句子的動作描述。\n\n" +
		"【選項分析】\n" +
		"❌ agenda (n): 議程、日程\n" +
		"✅ accomplish (v): 完成、達成"
	assert.Equal(t, want, q.ExplanationZH)
}

func TestGenerate_FallbackHint(t *testing.T) {
	t.Parallel()

	odd := word("despite", "prep", "儘管")
	q := NewGenerator(identitySource{}).Generate(odd, []domain.WordEntry{odd}, 0)

	assert.Contains(t, q.ExplanationZH, fallbackHint)
	assert.Equal(t, "The ____ was discussed thoroughly during the board meeting.", q.PromptEN)
}

func TestGenerate_AnswerInvariant_RealRandom(t *testing.T) {
	t.Parallel()

	g := NewGenerator(rand.New(rand.NewPCG(7, 11)))
	for i := range 200 {
		for _, e := range peers {
			q := g.Generate(e, peers, i%2)

			require.GreaterOrEqual(t, q.AnswerIndex, 0)
			require.Less(t, q.AnswerIndex, len(q.Choices))
			assert.Equal(t, e.Word, q.Choices[q.AnswerIndex])
			assert.Len(t, q.Choices, 4)

			sorted := slices.Clone(q.Choices)
			slices.Sort(sorted)
			assert.Len(t, slices.Compact(sorted), len(q.Choices), "duplicate choices: %v", q.Choices)
			count := 0
			for _, c := range q.Choices {
				if c == e.Word {
					count++
				}
			}
			assert.Equal(t, 1, count)
		}
	}
}
