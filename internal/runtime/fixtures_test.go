package runtime_test

// sampleParams mirrors the parameters a host would hold for a sales flow.
func sampleParams() map[string]any {
	return map[string]any{
		"contextData":    map[string]any{"cliente": "Maria", "empresa": "ACME", "limite": 3},
		"botName":        "Manu da {empresa}",
		"botTone":        "Warm and proactive",
		"botPersonality": "",
		"steps": map[string]any{
			"step": []any{
				map[string]any{
					"stepId":           " Abertura ",
					"stepOrder":        1,
					"stepName":         "Abertura",
					"stepObjective":    "Greet {cliente}",
					"stepInstructions": "Say hello to {cliente} from {empresa}. Ask for {desconhecido}.",
					"requiredFields":   "nome, email ,, {cliente}",
					"allowedTools":     "agendar_visita, consultar_cpf",
					"nextStepId":       "Diagnostico",
					"validationRules": map[string]any{
						"rule": []any{
							map[string]any{
								"field":        "cpf",
								"regexPattern": `^\d{11}$`,
								"errorMessage": "{cliente}, the CPF must have 11 digits.",
							},
						},
					},
					"behaviors": map[string]any{
						"scenario": []any{
							map[string]any{
								"leadType":         "Cold lead",
								"inputExamples":    "Oi, Olá {cliente}, , bom dia",
								"responseStrategy": "Follow the script",
								"responseExample":  "Hi {cliente}!",
							},
						},
					},
				},
				map[string]any{
					"stepId":    "diagnostico",
					"stepOrder": 2,
					"stepName":  "Diagnóstico",
				},
				map[string]any{
					"stepId":    "vendas",
					"stepOrder": 3,
					"stepName":  "Fechamento",
				},
			},
		},
	}
}
