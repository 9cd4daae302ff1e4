package constant

// ErrorInfo carries the English and Portuguese descriptions for a code.
type ErrorInfo struct {
	EN string `json:"en"`
	PT string `json:"pt"`
}

// ErrorMessages maps error codes to descriptions.
var ErrorMessages = map[int]ErrorInfo{
	// system
	CodeSuccess:            {"Success", "Sucesso"},
	CodeSystemError:        {"System error", "Erro de sistema"},
	CodeDatabaseError:      {"Database error", "Erro de banco de dados"},
	CodeRedisError:         {"Cache error", "Erro de cache"},
	CodeInternalError:      {"Internal error", "Erro interno"},
	CodeServiceUnavailable: {"Service unavailable", "Serviço indisponível"},
	CodeTimeout:            {"Timeout", "Tempo esgotado"},

	// params
	CodeInvalidParams:    {"Invalid parameters", "Parâmetros inválidos"},
	CodeMissingParams:    {"Missing parameters", "Parâmetros ausentes"},
	CodeParamsRangeError: {"Parameter out of range", "Parâmetro fora do intervalo"},
	CodeDuplicateRequest: {"Duplicate request", "Requisição duplicada"},

	// auth
	CodeUnauthorized:     {"Unauthorized", "Não autorizado"},
	CodeIPNotWhitelisted: {"IP not allowed", "IP não autorizado"},

	// fee resolution
	CodeFeeRootNotFound:    {"Fee table not found for merchant", "Tabela de taxas não encontrada para o estabelecimento"},
	CodeUnknownBrand:       {"Unknown card brand", "Bandeira desconhecida"},
	CodeUnknownProductType: {"Unknown product type for installment count", "Tipo de produto desconhecido para o número de parcelas"},
	CodeAmbiguousRange:     {"Ambiguous installment range", "Intervalo de parcelas ambíguo"},
	CodeFeeTreeInactive:    {"Fee table inactive", "Tabela de taxas inativa"},
	CodeMalformedFeeValue:  {"Malformed fee value", "Valor de taxa malformado"},
	CodeMerchantNotFound:   {"Merchant not found", "Estabelecimento não encontrado"},
	CodeMerchantInactive:   {"Merchant inactive", "Estabelecimento inativo"},
	CodeCustomerNotFound:   {"Customer not found", "Cliente não encontrado"},
	CodeCustomerInactive:   {"Customer inactive", "Cliente inativo"},

	// aggregation
	CodeAggregationConflict:  {"Concurrent settlement update, retry", "Atualização concorrente da liquidação, tente novamente"},
	CodeSettlementNotFound:   {"Settlement not found", "Liquidação não encontrada"},
	CodeSettlementFrozen:     {"Settlement already frozen", "Liquidação já congelada"},
	CodeTransactionRejected:  {"Transaction rejected from aggregation", "Transação rejeitada da agregação"},
	CodeDuplicateTransaction: {"Transaction already applied", "Transação já aplicada"},

	// dispatch
	CodeOrderLocked:         {"Settlement order already locked", "Ordem de liquidação já bloqueada"},
	CodeRoutingNotFound:     {"Payment institution routing not found", "Roteamento da instituição de pagamento não encontrado"},
	CodeOrderNotFound:       {"Settlement order not found", "Ordem de liquidação não encontrada"},
	CodeNothingToDispatch:   {"No balance to dispatch", "Sem saldo para liquidar"},
	CodeInstitutionNotFound: {"Payment institution not found", "Instituição de pagamento não encontrada"},

	// solicitation
	CodeSolicitationNotFound: {"Solicitation not found", "Solicitação não encontrada"},
	CodeInvalidTransition:    {"Invalid status transition", "Transição de status inválida"},
	CodeSolicitationTerminal: {"Solicitation is terminal", "Solicitação em estado terminal"},
	CodeEmptyBrandTree:       {"Solicitation has no brands", "Solicitação sem bandeiras"},
}
