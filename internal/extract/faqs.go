package extract

import (
	"github.com/PuerkitoBio/goquery"

	"brandscope/internal/model"
	"brandscope/internal/storeurl"
)

var faqPaths = []string{
	"/pages/faq",
	"/pages/faqs",
	"/pages/frequently-asked-questions",
	"/faq",
	"/community/faq",
	"/apps/help-center/faq",
}

// Accordion layout: one container per item holding a question and an
// answer element.
var (
	faqAccordionRule = newRule("faq-accordion", `accordion|faq-item`, "div", "section", "details")
	faqQuestionRule  = newRule("faq-question", `question|title`, "h2", "h3", "h4", "div", "summary", "button")
	faqAnswerRule    = newRule("faq-answer", `answer|content`, "div", "p")
)

// List layout: one container holding parallel question and answer
// sequences.
var (
	faqListRule         = newRule("faq-list", `faq-list`, "dl", "div")
	faqListQuestionRule = newRule("faq-list-question", `question`, "dt", "h3", "div")
	faqListAnswerRule   = newRule("faq-list-answer", `answer`, "dd", "div", "p")
)

var faqLinkRule = newLinkRule("faq-link", `^\s*faqs?\s*$|frequently asked`, `faq|frequently-asked-questions`)

// FAQPaths returns the well-known FAQ page paths in the order they are
// tried.
func FAQPaths() []string {
	return append([]string(nil), faqPaths...)
}

// FAQLink finds a homepage anchor pointing at an FAQ page.
func FAQLink(doc *goquery.Document, base storeurl.StoreURL) (string, bool) {
	href, ok := faqLinkRule.FirstHref(doc.Selection)
	if !ok {
		return "", false
	}
	return base.Resolve(href)
}

// FAQs parses an FAQ page. The accordion layout is tried first; the
// list layout only when it produced nothing.
func FAQs(doc *goquery.Document, r Renderer) []model.FaqItem {
	if items := accordionFAQs(doc.Selection, r); len(items) > 0 {
		return items
	}
	return listFAQs(doc.Selection, r)
}

func accordionFAQs(root *goquery.Selection, r Renderer) []model.FaqItem {
	out := make([]model.FaqItem, 0)
	faqAccordionRule.FindAll(root).Each(func(_ int, item *goquery.Selection) {
		q, a, ok := accordionPair(item)
		if !ok {
			return
		}
		// A wrapper whose nested items pair up on their own would only
		// repeat the first of them.
		if faqAccordionRule.FindAll(item).FilterFunction(func(_ int, inner *goquery.Selection) bool {
			_, _, innerOK := accordionPair(inner)
			return innerOK
		}).Length() > 0 {
			return
		}
		question := InlineText(q)
		answer := r.Render(a)
		if question == "" || answer == "" {
			return
		}
		out = append(out, model.FaqItem{Question: question, Answer: answer})
	})
	return out
}

func accordionPair(item *goquery.Selection) (*goquery.Selection, *goquery.Selection, bool) {
	q := faqQuestionRule.First(item)
	a := faqAnswerRule.First(item)
	return q, a, q.Length() > 0 && a.Length() > 0
}

// listFAQs pairs questions and answers positionally; surplus entries on
// either side are dropped.
func listFAQs(root *goquery.Selection, r Renderer) []model.FaqItem {
	out := make([]model.FaqItem, 0)
	faqListRule.Outermost(root).Each(func(_ int, list *goquery.Selection) {
		questions := faqListQuestionRule.FindAll(list)
		answers := faqListAnswerRule.FindAll(list)

		n := questions.Length()
		if answers.Length() < n {
			n = answers.Length()
		}
		for i := 0; i < n; i++ {
			out = append(out, model.FaqItem{
				Question: InlineText(questions.Eq(i)),
				Answer:   r.Render(answers.Eq(i)),
			})
		}
	})
	return out
}
