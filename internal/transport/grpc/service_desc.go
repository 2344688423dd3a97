package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	ServiceName       = "skiphire.v1.SkipCatalogService"
	listSkipsMethod   = "/" + ServiceName + "/ListSkips"
	getSkipMethod     = "/" + ServiceName + "/GetSkip"
	serviceDescSource = "skiphire/v1/catalog.proto"
)

// SkipCatalogServer is the catalog API. Messages are google.protobuf.Struct
// so no generated stubs are needed.
type SkipCatalogServer interface {
	ListSkips(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	GetSkip(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

var SkipCatalogServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*SkipCatalogServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ListSkips", Handler: listSkipsHandler},
		{MethodName: "GetSkip", Handler: getSkipHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: serviceDescSource,
}

func listSkipsHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SkipCatalogServer).ListSkips(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: listSkipsMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(SkipCatalogServer).ListSkips(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func getSkipHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SkipCatalogServer).GetSkip(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: getSkipMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(SkipCatalogServer).GetSkip(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

// CatalogClient calls SkipCatalogService over an existing connection.
type CatalogClient struct {
	cc grpc.ClientConnInterface
}

func NewCatalogClient(cc grpc.ClientConnInterface) *CatalogClient {
	return &CatalogClient{cc: cc}
}

func (c *CatalogClient) ListSkips(ctx context.Context, req *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, listSkipsMethod, req, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *CatalogClient) GetSkip(ctx context.Context, req *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, getSkipMethod, req, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
