package transportgrpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// The holder service is declared over protobuf well-known types:
//
//	service Holder {
//	  rpc GetValue(google.protobuf.Empty) returns (google.protobuf.DoubleValue);
//	  rpc SetValue(google.protobuf.DoubleValue) returns (google.protobuf.Empty);
//	}
const (
	serviceName    = "valueholder.v1.Holder"
	getValueMethod = "/" + serviceName + "/GetValue"
	setValueMethod = "/" + serviceName + "/SetValue"
)

type HolderServiceServer interface {
	GetValue(context.Context, *emptypb.Empty) (*wrapperspb.DoubleValue, error)
	SetValue(context.Context, *wrapperspb.DoubleValue) (*emptypb.Empty, error)
}

func RegisterHolderServiceServer(s grpc.ServiceRegistrar, srv HolderServiceServer) {
	s.RegisterService(&holderServiceDesc, srv)
}

var holderServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*HolderServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetValue", Handler: getValueHandler},
		{MethodName: "SetValue", Handler: setValueHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "valueholder/v1/holder.proto",
}

func getValueHandler(
	srv any,
	ctx context.Context,
	dec func(any) error,
	interceptor grpc.UnaryServerInterceptor,
) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(HolderServiceServer).GetValue(ctx, in)
	}

	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: getValueMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(HolderServiceServer).GetValue(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func setValueHandler(
	srv any,
	ctx context.Context,
	dec func(any) error,
	interceptor grpc.UnaryServerInterceptor,
) (any, error) {
	in := new(wrapperspb.DoubleValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(HolderServiceServer).SetValue(ctx, in)
	}

	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: setValueMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(HolderServiceServer).SetValue(ctx, req.(*wrapperspb.DoubleValue))
	}
	return interceptor(ctx, in, info, handler)
}
