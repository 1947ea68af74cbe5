package services

import "fmt"

// BlogPostPrompt asks for a full markdown-formatted post from a title and tone.
func BlogPostPrompt(title, tone string) string {
	return fmt.Sprintf(`Write a markdown-formatted blog post titled %q. Use a %s tone. Include an introduction, subheadings, code examples if relevant, and a conclusion.`, title, tone)
}

// BlogPostIdeasPrompt asks for five post ideas on a topic, as a JSON array.
func BlogPostIdeasPrompt(topics string) string {
	return fmt.Sprintf(`Generate a list of 5 blog post ideas related to %s.

For each blog post idea, return:
- a title
- a 2-line description about the post
- 3 relevant tags
- the tone (e.g., technical, casual, beginner-friendly, etc.)

Return the result as an array of JSON objects in this format:
[
    {
        "title": "",
        "description": "",
        "tags": ["", "", ""],
        "tone": ""
    }
]
Important: DO NOT add any extra text outside the JSON format. Only return valid JSON.
`, topics)
}

// CommentReplyPrompt asks for a reply to a reader's comment, in the voice of
// the blog author.
func CommentReplyPrompt(authorName, content, tone string) string {
	if authorName == "" {
		authorName = "User"
	}
	if tone == "" {
		tone = "friendly"
	}
	return fmt.Sprintf(`You received a blog comment from %s:
%q

Write a %s, concise, and relevant reply.
- Acknowledge their comment naturally.
- Keep the tone consistent with a blog author engaging readers.
`, authorName, content, tone)
}

// BlogSummaryPrompt asks for a JSON {title, summary} digest of post content.
func BlogSummaryPrompt(blogContent string) string {
	return fmt.Sprintf(`You are an AI assistant that summarizes blog posts.

Instructions:
- Read the blog post content below
- Generate a short, catchy, SEO-friendly title (max 12 words).
- Write a clear, engaging summary of about 300 words.
- At the end of the summary, add a markdown section titled **## What You'll Learn**
- Under that heading, list 3-5 key takeaways or skills the reader will learn in **bullet points** using markdown ('-')

Return the result in **valid JSON** with the following structure:
{
  "title": "Short SEO-friendly title",
  "summary": "300-word summary with a markdown section for what you'll learn"
}

Only return valid JSON. Do not include markdown or code blocks around the JSON.

Blog post content:
%s
`, blogContent)
}
