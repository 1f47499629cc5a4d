package rxsig_test

import (
	"fmt"

	"github.com/cilium/stream"

	"github.com/AnatoleLucet/rxsig"
	"github.com/AnatoleLucet/rxsig/flowable"
	"github.com/AnatoleLucet/rxsig/sig"
)

func ExampleBindObservable() {
	temperature := sig.NewProperty(0)

	b := rxsig.BindObservable(temperature, stream.FromSlice([]int{18, 19, 21}), func(fx *rxsig.SideEffects[int]) {
		fx.OnCompleted(func() { fmt.Println("sensor done") })
	})
	defer b.Dispose()

	<-b.Done()
	fmt.Println(temperature.Get())
	fmt.Println(temperature.Set(0))
	// Output:
	// sensor done
	// 21
	// sig: property is bound
}

func ExampleCompositeBinding() {
	bindings := &rxsig.CompositeBinding{}

	name := sig.NewProperty("")
	age := sig.NewProperty(0)

	rxsig.BindFlowable(name, flowable.Just("ada"), nil).AddTo(bindings)
	rxsig.BindFlowable(age, flowable.Just(36), nil).AddTo(bindings)
	fmt.Println(bindings.Len())

	bindings.Dispose()
	fmt.Println(bindings.Len())
	// Output:
	// 2
	// 0
}
