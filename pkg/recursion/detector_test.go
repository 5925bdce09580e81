package recursion

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type node = SimpleNode[string]

func boxable(name string, edges ...string) node {
	return node{Key: name, Boxable: true, Targets: edges}
}

func alias(name string, edges ...string) node {
	return node{Key: name, Targets: edges}
}

func compute(nodes ...node) (map[string]struct{}, error) {
	return ComputeBoxedTypes[string, node](nodes, NewMapContainer[string, node](nodes))
}

func names(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for n := range set {
		out = append(out, n)
	}
	return out
}

var _ = Describe("ComputeBoxedTypes", func() {
	It("returns nothing for an acyclic graph", func() {
		boxed, err := compute(boxable("A", "B"), boxable("B", "C"), boxable("C"))
		Expect(err).NotTo(HaveOccurred())
		Expect(boxed).To(BeEmpty())
	})

	It("boxes a self-referencing struct", func() {
		boxed, err := compute(boxable("Node", "Node"))
		Expect(err).NotTo(HaveOccurred())
		Expect(names(boxed)).To(ConsistOf("Node"))
	})

	It("boxes the only boxable node of a simple cycle", func() {
		boxed, err := compute(alias("A", "B"), alias("B", "C"), boxable("C", "A"))
		Expect(err).NotTo(HaveOccurred())
		Expect(names(boxed)).To(ConsistOf("C"))
	})

	It("boxes the first boxable node from where the cycle was entered", func() {
		boxed, err := compute(boxable("A", "B"), boxable("B", "C"), boxable("C", "A"))
		Expect(err).NotTo(HaveOccurred())
		Expect(names(boxed)).To(ConsistOf("A"))

		boxed, err = compute(boxable("B", "C"), boxable("C", "A"), boxable("A", "B"))
		Expect(err).NotTo(HaveOccurred())
		Expect(names(boxed)).To(ConsistOf("B"))
	})

	It("does not box a second node for a cycle that shares a boxed node", func() {
		// A -> B -> A and A -> C -> A share A.
		boxed, err := compute(boxable("A", "B", "C"), boxable("B", "A"), boxable("C", "A"))
		Expect(err).NotTo(HaveOccurred())
		Expect(names(boxed)).To(ConsistOf("A"))
	})

	It("boxes once per independent cycle", func() {
		boxed, err := compute(
			boxable("A", "B"), alias("B", "A"),
			alias("X", "Y"), boxable("Y", "X"),
		)
		Expect(err).NotTo(HaveOccurred())
		Expect(names(boxed)).To(ConsistOf("A", "Y"))
	})

	It("fails on a cycle without a boxable node", func() {
		_, err := compute(alias("A", "B"), alias("B", "A"))
		Expect(err).To(HaveOccurred())
		Expect(errors.Is(err, ErrInvalidRecursion)).To(BeTrue())

		var recErr *InvalidRecursionError
		Expect(errors.As(err, &recErr)).To(BeTrue())
		Expect(recErr.Name).To(BeElementOf("A", "B"))
		Expect(recErr.Cycle).To(Equal([]string{"A", "B", "A"}))
	})

	It("fails on an edge to an unknown node", func() {
		_, err := compute(boxable("A", "Missing"))
		Expect(errors.Is(err, ErrNodeNotFound)).To(BeTrue())
	})

	It("is unaffected by the order of roots outside any cycle", func() {
		cycle := []node{boxable("A", "B"), alias("B", "A")}
		leaves := []node{boxable("L1", "A"), alias("L2"), boxable("L3", "L2")}

		first, err := compute(append(append([]node{}, cycle...), leaves...)...)
		Expect(err).NotTo(HaveOccurred())
		second, err := compute(append([]node{leaves[2], leaves[1]}, append(cycle, leaves[0])...)...)
		Expect(err).NotTo(HaveOccurred())
		Expect(names(second)).To(ConsistOf(names(first)))
		Expect(names(first)).To(ConsistOf("A"))
	})

	It("is deterministic for a fixed root order", func() {
		// B -> C -> B is closed first and boxes B, which also breaks A -> B -> A.
		graph := []node{
			boxable("A", "B"), boxable("B", "C", "A"), boxable("C", "B"),
		}
		for range 10 {
			boxed, err := compute(graph...)
			Expect(err).NotTo(HaveOccurred())
			Expect(names(boxed)).To(ConsistOf("B"))
		}
	})
})
