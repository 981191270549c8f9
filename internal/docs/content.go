// Package docs carries the rendered API documentation served at /docs/api.
package docs

// Content is the markdown source of the API documentation. {{BASE_URL}} is
// substituted at render time.
const Content = "# Identity Cache & Enrichment API\n" +
	"\n" +
	"## Overview\n" +
	"This API stores, retrieves and resolves identity profiles (people) and companies.\n" +
	"Resolution is best-effort across multiple identifiers (email, LinkedIn, phone, domain):\n" +
	"identifiers are normalized into canonical keys and matched in a fixed priority order.\n" +
	"\n" +
	"## Base URL\n" +
	"`{{BASE_URL}}`\n" +
	"\n" +
	"## Authentication\n" +
	"All endpoints except `/health`, `/docs/api` and `/metrics` require an API key passed\n" +
	"via the `Authorization` header using the **Bearer** scheme.\n" +
	"\n" +
	"```bash\n" +
	"curl -H \"Authorization: Bearer your_secret_key\" \"{{BASE_URL}}/profiles?email=test@example.com\"\n" +
	"```\n" +
	"\n" +
	"| Status | Body | Reason |\n" +
	"|---|---|---|\n" +
	"| `401` | `{\"error\": \"Unauthorized: Missing or malformed Authorization header\"}` | Header missing or not `Bearer <key>`. |\n" +
	"| `401` | `{\"error\": \"Unauthorized: Invalid API Key\"}` | Key does not match. |\n" +
	"\n" +
	"## Endpoints\n" +
	"\n" +
	"### Upsert profile\n" +
	"**POST** `/profiles`\n" +
	"\n" +
	"Body fields: `email`, `linkedin_url` (alias `linkedin_profile`), `phone`; at least one\n" +
	"required. Every other field is stored in the open `data` document. Phone numbers are\n" +
	"normalized to E.164 (default region configurable, MX out of the box); LinkedIn URLs are\n" +
	"reduced to their slug; emails are lowercased.\n" +
	"\n" +
	"Response: `{\"status\": \"ok\", \"resolved_by\": \"email|linkedin_url|linkedin_slug|phone_e164|new\", \"profile_id\": \"<uuid>\"}`\n" +
	"\n" +
	"Matching keys already present on the stored record are never overwritten; missing keys\n" +
	"are back-filled and `data` is shallow-merged with new values winning.\n" +
	"\n" +
	"### Get profile\n" +
	"**GET** `/profiles?email=&linkedin=&phone=`\n" +
	"\n" +
	"Returns the flattened record (`data` fields plus `id`, `email`, `linkedin_slug`,\n" +
	"`phone`, `updated_at`) or, on a miss, HTTP 200 with\n" +
	"`{\"result\": null, \"message\": \"No records found\", \"search_criteria\": {...}}`.\n" +
	"\n" +
	"### Upsert company\n" +
	"**POST** `/companies`\n" +
	"\n" +
	"Body fields: `domain`, `linkedin_url`; at least one required. The rest goes to `data`.\n" +
	"Domains are lowercased with protocol, `www.` and trailing slash stripped.\n" +
	"\n" +
	"Response: `{\"status\": \"ok\", \"resolved_by\": \"domain|linkedin_slug|new\", \"company_id\": \"<uuid>\", \"saved_data\": {...}}`\n" +
	"\n" +
	"### Get company\n" +
	"**GET** `/companies?domain=&linkedin=`\n" +
	"\n" +
	"Returns `{\"result\": 1, ...}` with the flattened record, or the miss shape above.\n"
