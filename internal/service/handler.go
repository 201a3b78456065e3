package service

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"
)

// InsightsServiceName is the fully-qualified name of the InsightsService service.
const InsightsServiceName = "finhealth.v1.InsightsService"

// Procedure paths, in the "/<service>/<method>" form connect routes on.
const (
	CreateTransactionProcedure           = "/" + InsightsServiceName + "/CreateTransaction"
	ListTransactionsProcedure            = "/" + InsightsServiceName + "/ListTransactions"
	DeleteTransactionProcedure           = "/" + InsightsServiceName + "/DeleteTransaction"
	UpsertWalletProcedure                = "/" + InsightsServiceName + "/UpsertWallet"
	ListWalletsProcedure                 = "/" + InsightsServiceName + "/ListWallets"
	GetBalanceMetricsProcedure           = "/" + InsightsServiceName + "/GetBalanceMetrics"
	GetExpenseDisciplineIndexProcedure   = "/" + InsightsServiceName + "/GetExpenseDisciplineIndex"
	GetFinancialHealthScoreProcedure     = "/" + InsightsServiceName + "/GetFinancialHealthScore"
	GetRetirementForecastProcedure       = "/" + InsightsServiceName + "/GetRetirementForecast"
	GetPeerComparisonProcedure           = "/" + InsightsServiceName + "/GetPeerComparison"
	GetEnhancedFinancialMetricsProcedure = "/" + InsightsServiceName + "/GetEnhancedFinancialMetrics"
	GetSavingsTipsProcedure              = "/" + InsightsServiceName + "/GetSavingsTips"
	GetHealthHistoryProcedure            = "/" + InsightsServiceName + "/GetHealthHistory"
)

// InsightsServiceHandler is implemented by InsightsService.
type InsightsServiceHandler interface {
	CreateTransaction(context.Context, *connect.Request[CreateTransactionRequest]) (*connect.Response[CreateTransactionResponse], error)
	ListTransactions(context.Context, *connect.Request[ListTransactionsRequest]) (*connect.Response[ListTransactionsResponse], error)
	DeleteTransaction(context.Context, *connect.Request[DeleteTransactionRequest]) (*connect.Response[DeleteTransactionResponse], error)
	UpsertWallet(context.Context, *connect.Request[UpsertWalletRequest]) (*connect.Response[UpsertWalletResponse], error)
	ListWallets(context.Context, *connect.Request[ListWalletsRequest]) (*connect.Response[ListWalletsResponse], error)
	GetBalanceMetrics(context.Context, *connect.Request[GetBalanceMetricsRequest]) (*connect.Response[GetBalanceMetricsResponse], error)
	GetExpenseDisciplineIndex(context.Context, *connect.Request[GetExpenseDisciplineIndexRequest]) (*connect.Response[GetExpenseDisciplineIndexResponse], error)
	GetFinancialHealthScore(context.Context, *connect.Request[GetFinancialHealthScoreRequest]) (*connect.Response[GetFinancialHealthScoreResponse], error)
	GetRetirementForecast(context.Context, *connect.Request[GetRetirementForecastRequest]) (*connect.Response[GetRetirementForecastResponse], error)
	GetPeerComparison(context.Context, *connect.Request[GetPeerComparisonRequest]) (*connect.Response[GetPeerComparisonResponse], error)
	GetEnhancedFinancialMetrics(context.Context, *connect.Request[GetEnhancedFinancialMetricsRequest]) (*connect.Response[GetEnhancedFinancialMetricsResponse], error)
	GetSavingsTips(context.Context, *connect.Request[GetSavingsTipsRequest]) (*connect.Response[GetSavingsTipsResponse], error)
	GetHealthHistory(context.Context, *connect.Request[GetHealthHistoryRequest]) (*connect.Response[GetHealthHistoryResponse], error)
}

// NewInsightsServiceHandler builds an HTTP handler serving every InsightsService procedure.
// It returns the path to mount the handler on. The JSON codec is always installed.
func NewInsightsServiceHandler(svc InsightsServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(JSONCodec{})}, opts...)

	mux := http.NewServeMux()
	mux.Handle(CreateTransactionProcedure, connect.NewUnaryHandler(CreateTransactionProcedure, svc.CreateTransaction, opts...))
	mux.Handle(ListTransactionsProcedure, connect.NewUnaryHandler(ListTransactionsProcedure, svc.ListTransactions, opts...))
	mux.Handle(DeleteTransactionProcedure, connect.NewUnaryHandler(DeleteTransactionProcedure, svc.DeleteTransaction, opts...))
	mux.Handle(UpsertWalletProcedure, connect.NewUnaryHandler(UpsertWalletProcedure, svc.UpsertWallet, opts...))
	mux.Handle(ListWalletsProcedure, connect.NewUnaryHandler(ListWalletsProcedure, svc.ListWallets, opts...))
	mux.Handle(GetBalanceMetricsProcedure, connect.NewUnaryHandler(GetBalanceMetricsProcedure, svc.GetBalanceMetrics, opts...))
	mux.Handle(GetExpenseDisciplineIndexProcedure, connect.NewUnaryHandler(GetExpenseDisciplineIndexProcedure, svc.GetExpenseDisciplineIndex, opts...))
	mux.Handle(GetFinancialHealthScoreProcedure, connect.NewUnaryHandler(GetFinancialHealthScoreProcedure, svc.GetFinancialHealthScore, opts...))
	mux.Handle(GetRetirementForecastProcedure, connect.NewUnaryHandler(GetRetirementForecastProcedure, svc.GetRetirementForecast, opts...))
	mux.Handle(GetPeerComparisonProcedure, connect.NewUnaryHandler(GetPeerComparisonProcedure, svc.GetPeerComparison, opts...))
	mux.Handle(GetEnhancedFinancialMetricsProcedure, connect.NewUnaryHandler(GetEnhancedFinancialMetricsProcedure, svc.GetEnhancedFinancialMetrics, opts...))
	mux.Handle(GetSavingsTipsProcedure, connect.NewUnaryHandler(GetSavingsTipsProcedure, svc.GetSavingsTips, opts...))
	mux.Handle(GetHealthHistoryProcedure, connect.NewUnaryHandler(GetHealthHistoryProcedure, svc.GetHealthHistory, opts...))

	return "/" + InsightsServiceName + "/", mux
}

// InsightsServiceClient is a typed client for InsightsService over the JSON codec.
type InsightsServiceClient struct {
	CreateTransaction           *connect.Client[CreateTransactionRequest, CreateTransactionResponse]
	ListTransactions            *connect.Client[ListTransactionsRequest, ListTransactionsResponse]
	DeleteTransaction           *connect.Client[DeleteTransactionRequest, DeleteTransactionResponse]
	UpsertWallet                *connect.Client[UpsertWalletRequest, UpsertWalletResponse]
	ListWallets                 *connect.Client[ListWalletsRequest, ListWalletsResponse]
	GetBalanceMetrics           *connect.Client[GetBalanceMetricsRequest, GetBalanceMetricsResponse]
	GetExpenseDisciplineIndex   *connect.Client[GetExpenseDisciplineIndexRequest, GetExpenseDisciplineIndexResponse]
	GetFinancialHealthScore     *connect.Client[GetFinancialHealthScoreRequest, GetFinancialHealthScoreResponse]
	GetRetirementForecast       *connect.Client[GetRetirementForecastRequest, GetRetirementForecastResponse]
	GetPeerComparison           *connect.Client[GetPeerComparisonRequest, GetPeerComparisonResponse]
	GetEnhancedFinancialMetrics *connect.Client[GetEnhancedFinancialMetricsRequest, GetEnhancedFinancialMetricsResponse]
	GetSavingsTips              *connect.Client[GetSavingsTipsRequest, GetSavingsTipsResponse]
	GetHealthHistory            *connect.Client[GetHealthHistoryRequest, GetHealthHistoryResponse]
}

// NewInsightsServiceClient builds a client against baseURL, e.g. "http://localhost:8111".
func NewInsightsServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *InsightsServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(JSONCodec{})}, opts...)
	return &InsightsServiceClient{
		CreateTransaction:           connect.NewClient[CreateTransactionRequest, CreateTransactionResponse](httpClient, baseURL+CreateTransactionProcedure, opts...),
		ListTransactions:            connect.NewClient[ListTransactionsRequest, ListTransactionsResponse](httpClient, baseURL+ListTransactionsProcedure, opts...),
		DeleteTransaction:           connect.NewClient[DeleteTransactionRequest, DeleteTransactionResponse](httpClient, baseURL+DeleteTransactionProcedure, opts...),
		UpsertWallet:                connect.NewClient[UpsertWalletRequest, UpsertWalletResponse](httpClient, baseURL+UpsertWalletProcedure, opts...),
		ListWallets:                 connect.NewClient[ListWalletsRequest, ListWalletsResponse](httpClient, baseURL+ListWalletsProcedure, opts...),
		GetBalanceMetrics:           connect.NewClient[GetBalanceMetricsRequest, GetBalanceMetricsResponse](httpClient, baseURL+GetBalanceMetricsProcedure, opts...),
		GetExpenseDisciplineIndex:   connect.NewClient[GetExpenseDisciplineIndexRequest, GetExpenseDisciplineIndexResponse](httpClient, baseURL+GetExpenseDisciplineIndexProcedure, opts...),
		GetFinancialHealthScore:     connect.NewClient[GetFinancialHealthScoreRequest, GetFinancialHealthScoreResponse](httpClient, baseURL+GetFinancialHealthScoreProcedure, opts...),
		GetRetirementForecast:       connect.NewClient[GetRetirementForecastRequest, GetRetirementForecastResponse](httpClient, baseURL+GetRetirementForecastProcedure, opts...),
		GetPeerComparison:           connect.NewClient[GetPeerComparisonRequest, GetPeerComparisonResponse](httpClient, baseURL+GetPeerComparisonProcedure, opts...),
		GetEnhancedFinancialMetrics: connect.NewClient[GetEnhancedFinancialMetricsRequest, GetEnhancedFinancialMetricsResponse](httpClient, baseURL+GetEnhancedFinancialMetricsProcedure, opts...),
		GetSavingsTips:              connect.NewClient[GetSavingsTipsRequest, GetSavingsTipsResponse](httpClient, baseURL+GetSavingsTipsProcedure, opts...),
		GetHealthHistory:            connect.NewClient[GetHealthHistoryRequest, GetHealthHistoryResponse](httpClient, baseURL+GetHealthHistoryProcedure, opts...),
	}
}
