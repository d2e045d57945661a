package testutil

// ProvidersJSON is a /config/providers response. Model keys are deliberately
// not in alphabetical order, and one model is not active.
const ProvidersJSON = `{
  "providers": [
    {
      "id": "openai",
      "name": "OpenAI",
      "env": ["OPENAI_API_KEY"],
      "models": {
        "gpt-4": {"id": "gpt-4", "providerID": "openai", "name": "gpt-4", "family": "gpt", "status": "active",
                  "cost": {"input": 30, "output": 60, "cache": {"read": 0, "write": 0}}},
        "gpt-3.5-turbo": {"id": "gpt-3.5-turbo", "providerID": "openai", "name": "gpt-3.5-turbo", "family": "gpt", "status": "deprecated"},
        "gpt-4o": {"id": "gpt-4o", "providerID": "openai", "name": "gpt-4o", "family": "gpt", "status": "active"}
      }
    },
    {
      "id": "anthropic",
      "name": "Anthropic",
      "env": ["ANTHROPIC_API_KEY"],
      "models": {
        "claude-3": {"id": "claude-3", "providerID": "anthropic", "name": "claude-3", "family": "claude", "status": "active"}
      }
    },
    {
      "id": "local",
      "name": "Local",
      "models": {}
    }
  ],
  "default": {"anthropic": "claude-3"}
}`

// SessionJSON is a /session/{id} response
const SessionJSON = `{
  "id": "ses_fixture",
  "slug": "fixture",
  "version": "0.9.0",
  "projectID": "prj_1",
  "directory": "/home/dev/projects/api",
  "title": "Fixture session",
  "time": {"created": 1714557600000, "updated": 1714561200000}
}`

// MessagesJSON is a /session/{id}/message response with a user turn and an
// assistant turn carrying reasoning, step and text parts.
const MessagesJSON = `[
  {
    "info": {"id": "msg_1", "sessionID": "ses_fixture", "role": "user", "time": {"created": 1714557600000}},
    "parts": [{"id": "prt_1", "sessionID": "ses_fixture", "messageID": "msg_1", "type": "text", "text": "Hello"}]
  },
  {
    "info": {"id": "msg_2", "sessionID": "ses_fixture", "role": "assistant", "time": {"created": 1714557601000, "completed": 1714557605000},
             "modelID": "claude-3", "providerID": "anthropic", "cost": 0.002,
             "tokens": {"input": 10, "output": 20, "reasoning": 0, "cache": {"read": 0, "write": 0}}, "finish": "stop"},
    "parts": [
      {"id": "prt_2", "sessionID": "ses_fixture", "messageID": "msg_2", "type": "step-start"},
      {"id": "prt_3", "sessionID": "ses_fixture", "messageID": "msg_2", "type": "reasoning", "text": "thinking"},
      {"id": "prt_4", "sessionID": "ses_fixture", "messageID": "msg_2", "type": "text", "text": "Hi there"},
      {"id": "prt_5", "sessionID": "ses_fixture", "messageID": "msg_2", "type": "step-finish"}
    ]
  }
]`
