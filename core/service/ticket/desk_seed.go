package ticket

import "time"

// seedEmail is one demo message. Timestamps are expressed as an age
// relative to seeding time so the demo inbox always looks recent.
type seedEmail struct {
	sender  string
	subject string
	body    string
	age     time.Duration
}

var seedEmails = []seedEmail{
	{
		sender:  "eve@startup.io",
		subject: "Help required with account verification",
		body:    "Do you support integration with third-party APIs? Specifically, I'm looking for CRM integration options.",
		age:     181 * time.Hour,
	},
	{
		sender:  "diana@client.co",
		subject: "General query about subscription",
		body:    "Hi team, I am unable to log into my account since yesterday. Could you please help me resolve this issue?",
		age:     37 * time.Hour,
	},
	{
		sender:  "eve@startup.io",
		subject: "Immediate support needed for billing error",
		body:    "Hello, I wanted to understand the pricing tiers better. Could you share a detailed breakdown?",
		age:     145 * time.Hour,
	},
	{
		sender:  "alice@example.com",
		subject: "Urgent request: system access blocked",
		body:    "Hi team, I am unable to log into my account since yesterday. Could you please help me resolve this issue?",
		age:     112 * time.Hour,
	},
	{
		sender:  "eve@startup.io",
		subject: "Question: integration with API",
		body:    "Despite multiple attempts, I cannot reset my password. The reset link doesn't seem to work.",
		age:     153 * time.Hour,
	},
	{
		sender:  "alice@example.com",
		subject: "Critical help needed for downtime",
		body:    "Hi team, I am unable to log into my account since yesterday. Could you please help me resolve this issue?",
		age:     205 * time.Hour,
	},
	{
		sender:  "diana@client.co",
		subject: "Help required with account verification",
		body:    "There is a billing error where I was charged twice. This needs immediate correction.",
		age:     138 * time.Hour,
	},
	{
		sender:  "alice@example.com",
		subject: "Support needed for login issue",
		body:    "I am facing issues with verifying my account. The verification email never arrived. Can you assist?",
		age:     79 * time.Hour,
	},
	{
		sender:  "alice@example.com",
		subject: "General query about subscription",
		body:    "Our servers are down, and we need immediate support. This is highly critical.",
		age:     11 * time.Hour,
	},
	{
		sender:  "eve@startup.io",
		subject: "Help required with account verification",
		body:    "Do you support integration with third-party APIs? Specifically, I'm looking for CRM integration options.",
		age:     120 * time.Hour,
	},
	{
		sender:  "diana@client.co",
		subject: "Support needed for login issue",
		body:    "Hi team, I am unable to log into my account since yesterday. Could you please help me resolve this issue?",
		age:     1 * time.Hour,
	},
	{
		sender:  "alice@example.com",
		subject: "Help required with account verification",
		body:    "Do you support integration with third-party APIs? Specifically, I'm looking for CRM integration options.",
		age:     56 * time.Hour,
	},
	{
		sender:  "eve@startup.io",
		subject: "Critical help needed for downtime",
		body:    "Our servers are down, and we need immediate support. This is highly critical.",
		age:     114 * time.Hour,
	},
	{
		sender:  "alice@example.com",
		subject: "Query about product pricing",
		body:    "There is a billing error where I was charged twice. This needs immediate correction.",
		age:     48 * time.Hour,
	},
	{
		sender:  "diana@client.co",
		subject: "General query about subscription",
		body:    "I am facing issues with verifying my account. The verification email never arrived. Can you assist?",
		age:     12 * time.Hour,
	},
	{
		sender:  "alice@example.com",
		subject: "Immediate support needed for billing error",
		body:    "Despite multiple attempts, I cannot reset my password. The reset link doesn't seem to work.",
		age:     174 * time.Hour,
	},
	{
		sender:  "charlie@partner.org",
		subject: "Help required with account verification",
		body:    "This is urgent -- our system is completely inaccessible, and this is affecting our operations.",
		age:     205 * time.Hour,
	},
	{
		sender:  "diana@client.co",
		subject: "Request for refund process clarification",
		body:    "Could you clarify the steps involved in requesting a refund? I submitted one last week but have no update.",
		age:     92 * time.Hour,
	},
	{
		sender:  "eve@startup.io",
		subject: "Query about product pricing",
		body:    "Our servers are down, and we need immediate support. This is highly critical.",
		age:     100 * time.Hour,
	},
	{
		sender:  "bob@customer.com",
		subject: "Urgent request: system access blocked",
		body:    "Despite multiple attempts, I cannot reset my password. The reset link doesn't seem to work.",
		age:     96 * time.Hour,
	},
}

var seedKnowledgePassages = []string{
	"Our service supports a wide range of third-party CRM integrations, including Salesforce, HubSpot, and Zoho. You can find detailed documentation in our API guide.",
	"For password reset issues, please ensure you are using the correct email address. If the link is not working, try clearing your browser's cache or using an incognito window.",
	"We offer several pricing tiers. The Basic plan is free, the Pro plan is $25/month, and the Enterprise plan is custom-priced. Please visit our website for a complete breakdown of features.",
	"For billing inquiries or errors, please contact our billing team at billing@example.com or call us at 1-800-555-1234. We'll be happy to assist you.",
	"If you are experiencing a system outage or downtime, our technical team is on standby. Please provide a detailed description of the issue and your account ID so we can escalate it immediately.",
}
