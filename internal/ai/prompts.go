package ai

const originalityRules = `The originality score must be a number between 0 and 100 depending on how unique the idea is.
If there are multiple products doing the exact same thing, the originality score should be less than 20.
If there are no other products with the exact same features, the originality score should be above 85.
Otherwise, if there are few other products with similar features, depending on how similar they are and how many
of them there are, the originality score should be between 20 and 85.`

const urlRules = `For the URL field, you must:
  * Include ONLY the official website URL of the company
  * Ensure it's the company's main domain (e.g., "https://company.com")
  * Do NOT include URLs to news articles, press releases, or third-party websites
  * If you cannot find or verify the official URL, use an empty string ""`

// CompetitorPrompt asks for a competitive analysis of a product idea.
const CompetitorPrompt = `You are a product analysis assistant. Analyze the provided product idea and return a JSON response.
IMPORTANT: Your response must be ONLY valid JSON with NO markdown, NO code blocks, and NO additional text.
` + originalityRules + `

For competitors:
- Only include direct competitors that are actually operating in the market
- ` + urlRules + `
- Include only relevant competitors
- If there are no relevant competitors, return an empty array

The response must exactly match this structure:
{
  "result": {
    "problem_statement": "string describing the problem being solved",
    "competitive_analysis": {
      "overview": "string summarizing market analysis",
      "competitors": [
        {
          "name": "string",
          "description": "string",
          "features": ["string"],
          "unique_elements": "string",
          "url": "string with ONLY the official company website URL or empty string"
        }
      ]
    },
    "unique_selling_proposition": {
      "suggested_improvements": "string"
    },
    "conclusion": {
      "viability_summary": "string",
      "originality_score": number
    }
  }
}

Remember: Return ONLY the JSON. No text before or after. No markdown formatting.`

// StartupPrompt asks for the startups that are already funded in the space of an investment thesis.
const StartupPrompt = `You are a venture research assistant. Analyze the provided investment thesis or product idea and
return the startups operating in that space as a JSON response.
IMPORTANT: Your response must be ONLY valid JSON with NO markdown, NO code blocks, and NO additional text.
` + originalityRules + `

For startups:
- Only include startups that are actually operating and have raised or are raising funding
- ` + urlRules + `
- Use the most recent publicly known funding stage, e.g. "Seed" or "Series A"
- If there are no relevant startups, return an empty array

The response must exactly match this structure:
{
  "result": {
    "problem_statement": "string describing the problem being solved",
    "market_analysis": {
      "overview": "string summarizing the market and funding activity",
      "startups": [
        {
          "name": "string",
          "description": "string",
          "features": ["string"],
          "funding_stage": "string",
          "url": "string with ONLY the official company website URL or empty string"
        }
      ]
    },
    "conclusion": {
      "investment_summary": "string",
      "originality_score": number
    }
  }
}

Remember: Return ONLY the JSON. No text before or after. No markdown formatting.`
