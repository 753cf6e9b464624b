package i18n

var ptBRMessages = map[Code]string{
	CodeBuildingRequired:          "É necessário informar uma construção.",
	CodeBuildingInvalid:           "{{if .Building}}A construção {{.Building}}{{else}}Uma construção{{end}} tem id, taxa ou preço inválido.",
	CodeUpgradeRequired:           "É necessário informar uma melhoria.",
	CodeUpgradeInvalid:            "{{if .Upgrade}}A melhoria {{.Upgrade}}{{else}}Uma melhoria{{end}} tem id ou preço inválido.",
	CodeBuffRequired:              "É necessário informar um bônus.",
	CodeBuffInvalidTimer:          "O tempo do bônus deve satisfazer 0 < restante <= total.",
	CodePricingInvalidConfig:      "O preço exige crescimento acima de 1 e reembolso entre 0 e 1.",
	CodeStateInvalid:              "O estado do jogo é inválido: {{.Field}}.",
	CodeAmountNotFinite:           "O valor deve ser um número finito.",
	CodeCommandUnknown:            "Comando desconhecido.",
	CodeCommandInvalid:            "O comando está malformado.",
	CodeCatalogUnknownEntry:       "{{.Kind}} desconhecido: {{.ID}}.",
	CodeSlotRequired:              "É necessário informar um espaço de salvamento.",
	CodeWarpNegativeTicks:         "Não é possível voltar no tempo.",
	CodeBuildingInsufficientOwned: "Você não pode vender mais construções do que possui.",
	CodePurchaseUnaffordable:      "Você precisa de {{.Price}} biscoitos mas só tem {{.Bank}}.",
	CodeUpgradeAlreadyOwned:       "Você já possui {{.Upgrade}}.",
	CodeUpgradeNotPurchasable:     "{{.Upgrade}} ainda não foi desbloqueada.",
	CodeClickingRateNegative:      "A taxa de cliques não pode ser negativa.",
	CodeBankNegative:              "O banco não pode ficar abaixo de zero.",
	CodeBuffWarpNegative:          "O tempo dos bônus não pode correr para trás.",
	CodeScenarioExpectationFailed: "A expectativa do cenário falhou no passo {{.Step}}.",
	CodeNotFound:                  "Espaço de salvamento não encontrado.",
	CodeSaveVersionUnsupported:    "Este salvamento foi gravado por uma versão não suportada.",
	CodeSaveChecksumMismatch:      "O espaço {{.Slot}} está corrompido.",
	CodeSaveSignatureMismatch:     "O espaço {{.Slot}} falhou na verificação de assinatura.",
}
