// Package template holds the immutable bilingual sentence template banks.
package template

import (
	"strings"

	"github.com/heartmarshall/toeic-corpus/internal/domain"
)

// Placeholder marks where the headword (or its meaning) is substituted.
const Placeholder = "{word}"

// Blank replaces the headword in cloze prompts.
const Blank = "____"

// Template is an English sentence with its parallel localized sentence.
type Template struct {
	EN string
	ZH string
}

// FillEN substitutes word into the English template.
func (t Template) FillEN(word string) string {
	return strings.ReplaceAll(t.EN, Placeholder, word)
}

// FillZH substitutes meaning into the localized template.
func (t Template) FillZH(meaning string) string {
	return strings.ReplaceAll(t.ZH, Placeholder, meaning)
}

// Bank is a fixed set of templates per part of speech.
type Bank struct {
	name  string
	byPOS map[domain.PartOfSpeech][]Template
}

// Name identifies the bank in logs.
func (b Bank) Name() string { return b.name }

// Size returns the number of templates used for pos.
func (b Bank) Size(pos domain.PartOfSpeech) int {
	return len(b.templates(pos))
}

// Pick returns the template at index mod bank size for pos, and that position.
// Unknown parts of speech use the noun templates.
func (b Bank) Pick(pos domain.PartOfSpeech, index int) (Template, int) {
	ts := b.templates(pos)
	n := len(ts)
	i := ((index % n) + n) % n
	return ts[i], i
}

func (b Bank) templates(pos domain.PartOfSpeech) []Template {
	if ts, ok := b.byPOS[pos]; ok {
		return ts
	}
	return b.byPOS[domain.PartOfSpeechNoun]
}

// BankA returns the general business bank. Cloze questions also use it.
func BankA() Bank { return bankA }

// BankB returns the task and department bank.
func BankB() Bank { return bankB }

var bankA = Bank{
	name: "general",
	byPOS: map[domain.PartOfSpeech][]Template{
		domain.PartOfSpeechVerb: {
			{"The company decided to {word} in order to improve overall performance.", "公司決定{word}以提升整體績效。"},
			{"Management plans to {word} before the end of the fiscal year.", "管理層計劃在本財年結束前{word}。"},
			{"It is important to {word} when dealing with complex business situations.", "在處理複雜的商業情況時，{word}是很重要的。"},
			{"The director asked the team to {word} as part of the new initiative.", "主管要求團隊{word}作為新計畫的一部分。"},
			{"In today's competitive market, companies must {word} to stay ahead.", "在當今競爭激烈的市場中，公司必須{word}才能保持領先。"},
			{"The board voted to {word} the proposed changes immediately.", "董事會投票決定立即{word}提議的變更。"},
			{"Employees are expected to {word} according to company guidelines.", "員工應按照公司準則{word}。"},
			{"The CEO emphasized the need to {word} during the quarterly meeting.", "執行長在季度會議上強調需要{word}。"},
		},
		domain.PartOfSpeechNoun: {
			{"The {word} was discussed thoroughly during the board meeting.", "在董事會會議上徹底討論了{word}。"},
			{"Effective {word} is essential for any successful organization.", "有效的{word}對任何成功的組織都至關重要。"},
			{"The company's {word} has improved significantly this quarter.", "公司的{word}在本季度有顯著改善。"},
			{"A detailed {word} was submitted to the management team.", "向管理團隊提交了詳細的{word}。"},
			{"The {word} will be reviewed by the committee next week.", "{word}將在下週由委員會審查。"},
			{"Good {word} can lead to higher employee satisfaction.", "良好的{word}可以提高員工滿意度。"},
			{"The annual {word} showed promising results for the company.", "年度{word}顯示公司前景看好。"},
			{"Proper {word} is a key factor in business success.", "適當的{word}是商業成功的關鍵因素。"},
		},
		domain.PartOfSpeechAdjective: {
			{"The {word} approach helped the company achieve its goals.", "{word}的方法幫助公司實現了目標。"},
			{"A {word} strategy is necessary for long-term success.", "{word}的策略對長期成功是必要的。"},
			{"The manager praised the team for their {word} performance.", "經理稱讚團隊{word}的表現。"},
			{"The {word} results exceeded everyone's expectations.", "{word}的結果超出了所有人的預期。"},
			{"It is {word} to maintain high standards in the workplace.", "在工作場所保持高標準是{word}的。"},
			{"The company adopted a more {word} policy this year.", "公司今年採用了更{word}的政策。"},
			{"The {word} solution resolved the issue quickly and efficiently.", "{word}的解決方案快速有效地解決了問題。"},
			{"Investors were pleased with the {word} outcome of the project.", "投資者對專案{word}的結果感到滿意。"},
		},
		domain.PartOfSpeechAdverb: {
			{"The project was {word} completed ahead of schedule.", "專案{word}提前完成。"},
			{"The team worked {word} to meet the tight deadline.", "團隊{word}工作以滿足緊迫的期限。"},
			{"Sales have {word} increased over the past quarter.", "銷售額在過去一季{word}增長。"},
			{"The policy was {word} enforced across all departments.", "該政策在所有部門{word}執行。"},
		},
	},
}

var bankB = Bank{
	name: "department",
	byPOS: map[domain.PartOfSpeech][]Template{
		domain.PartOfSpeechVerb: {
			{"The department needs to {word} the new policy before the deadline.", "部門需要在截止日期前{word}新政策。"},
			{"We should {word} every opportunity to expand our market share.", "我們應該{word}每個機會來擴大市場份額。"},
			{"The supervisor asked the staff to {word} the updated procedures.", "主管要求員工{word}更新的程序。"},
			{"It would be beneficial to {word} this matter with the client directly.", "直接與客戶{word}這件事會很有幫助。"},
			{"The organization plans to {word} several key objectives this quarter.", "組織計劃本季度{word}幾個關鍵目標。"},
			{"Senior management decided to {word} a new approach to the problem.", "高層管理決定{word}新方法來解決問題。"},
			{"All departments are required to {word} in accordance with regulations.", "所有部門都必須按照規定{word}。"},
			{"The consultant recommended that we {word} our current strategy.", "顧問建議我們{word}目前的策略。"},
		},
		domain.PartOfSpeechNoun: {
			{"The {word} played a crucial role in the company's recent success.", "{word}在公司最近的成功中發揮了關鍵作用。"},
			{"A comprehensive {word} was presented at the annual shareholders meeting.", "在年度股東大會上提出了全面的{word}。"},
			{"The importance of {word} cannot be overstated in modern business.", "{word}在現代商業中的重要性不容小覷。"},
			{"The team prepared a detailed {word} for the upcoming presentation.", "團隊為即將到來的簡報準備了詳細的{word}。"},
			{"Understanding {word} is essential for career advancement.", "理解{word}對職業發展至關重要。"},
			{"The recent {word} has had a significant impact on our operations.", "最近的{word}對我們的營運產生了重大影響。"},
			{"Effective {word} requires careful planning and consistent execution.", "有效的{word}需要仔細規劃和持續執行。"},
			{"The committee reviewed the {word} and approved it unanimously.", "委員會審查了{word}並一致通過。"},
		},
		domain.PartOfSpeechAdjective: {
			{"The {word} decision led to a significant increase in revenue.", "{word}的決定導致收入大幅增加。"},
			{"Maintaining a {word} attitude is important for professional growth.", "保持{word}的態度對專業成長很重要。"},
			{"The report highlighted several {word} factors affecting productivity.", "報告強調了影響生產力的幾個{word}因素。"},
			{"A {word} perspective can help resolve complex workplace issues.", "{word}的觀點可以幫助解決複雜的職場問題。"},
			{"The survey revealed that employees prefer a {word} work environment.", "調查顯示員工更喜歡{word}的工作環境。"},
			{"The {word} proposal received strong support from all stakeholders.", "{word}的提案獲得了所有利益相關者的大力支持。"},
			{"Developing a {word} mindset is crucial for effective leadership.", "培養{word}的心態對有效領導至關重要。"},
			{"The company's {word} reputation attracted top talent from around the world.", "公司{word}的聲譽吸引了來自世界各地的頂尖人才。"},
		},
		domain.PartOfSpeechAdverb: {
			{"The new system was {word} implemented across all departments.", "新系統在所有部門{word}實施。"},
			{"Revenue has {word} grown since the restructuring took effect.", "自重組生效以來，收入{word}增長。"},
			{"The guidelines were {word} followed by all team members.", "所有團隊成員{word}遵守了準則。"},
			{"Customer feedback was {word} positive regarding the new service.", "客戶對新服務的反饋{word}是正面的。"},
		},
	},
}
