// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"

	v0Types "github.com/canonical/identity-platform-api/v0/http"
	rpcStatus "google.golang.org/genproto/googleapis/rpc/status"
)

var marshaler = protojson.MarshalOptions{EmitUnpopulated: true, UseProtoNames: true}

// ForwardErrorResponseRewriter rewrites error message to comply with Admin UI
// standard json response for errors. It doesn't do anything on other messages
func ForwardErrorResponseRewriter(_ context.Context, response proto.Message) (any, error) {
	codeError, ok := response.(*rpcStatus.Status)
	if !ok {
		return response, nil
	}

	httpStatus := runtime.HTTPStatusFromCode(
		codes.Code(codeError.Code),
	)

	return &v0Types.ErrorResponse{
		Status:  int32(httpStatus),
		Message: codeError.GetMessage(),
	}, nil
}

// WriteError renders err as an Admin UI error body. Errors that do not carry
// a gRPC status are reported as internal errors.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	st, ok := status.FromError(err)
	if !ok {
		st = status.New(codes.Internal, err.Error())
	}

	rewritten, _ := ForwardErrorResponseRewriter(r.Context(), st.Proto())
	body, ok := rewritten.(*v0Types.ErrorResponse)
	if !ok {
		body = &v0Types.ErrorResponse{Status: http.StatusInternalServerError, Message: st.Message()}
	}

	raw, mErr := marshaler.Marshal(body)
	if mErr != nil {
		http.Error(w, st.Message(), int(body.Status))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(int(body.Status))
	_, _ = w.Write(raw)
}

// WriteJSON renders a successful response.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
