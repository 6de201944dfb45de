package handler

import "context"

type pingOK struct{}

func (pingOK) Ping(ctx context.Context) error { return nil }

type pingFail struct{}

func (pingFail) Ping(ctx context.Context) error { return context.DeadlineExceeded }
