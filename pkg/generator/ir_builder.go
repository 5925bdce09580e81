package generator

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/blimu-dev/typegen/pkg/config"
	"github.com/blimu-dev/typegen/pkg/diag"
	"github.com/blimu-dev/typegen/pkg/ir"
	"github.com/blimu-dev/typegen/pkg/naming"
	"github.com/blimu-dev/typegen/pkg/openapi"
)

// BuildOptions controls one IR build.
type BuildOptions struct {
	// Names escapes document strings; nil selects the defensive strategy.
	Names naming.SafeNameGenerator
	// FailOnNameCollision turns identifier collisions into errors.
	FailOnNameCollision bool
	// Logger receives diagnostics as they are recorded; nil discards them.
	Logger diag.Logger
}

// BuildIR assigns a name to every type in doc and returns the resulting
// declarations, grouped per component section, along with the operations
// grouped by tag.
func BuildIR(doc *openapi.Document, opts BuildOptions) (ir.IR, error) {
	names := opts.Names
	if names == nil {
		names = naming.Defensive()
	}
	logger := opts.Logger
	if logger == nil {
		logger = diag.NopLogger{}
	}
	diags := diag.NewCollector(logger)
	t := newTranslator(NewComponents(doc), names, diags)

	var result ir.IR
	var err error
	if result.Schemas, err = t.translateSchemas(); err != nil {
		return ir.IR{}, err
	}
	if result.Parameters, err = t.translateParameters(); err != nil {
		return ir.IR{}, err
	}
	if result.Headers, err = t.translateHeaders(); err != nil {
		return ir.IR{}, err
	}
	if result.RequestBodies, err = t.translateRequestBodies(); err != nil {
		return ir.IR{}, err
	}
	if result.Responses, err = t.translateResponses(); err != nil {
		return ir.IR{}, err
	}
	ops, err := t.translateOperations()
	if err != nil {
		return ir.IR{}, err
	}

	all := result.Components()
	for _, op := range ops {
		all = append(all, op.Input, op.Output)
	}
	if err := checkNameCollisions(all, opts.FailOnNameCollision, diags); err != nil {
		return ir.IR{}, err
	}

	if result.Boxed, err = boxRecursiveSchemas(result.Schemas, logger); err != nil {
		return ir.IR{}, fmt.Errorf("boxing recursive schemas: %w", err)
	}

	result.Services = groupServices(ops)
	result.Diagnostics = diags.Diagnostics()
	logger.Info("assigned type names",
		"schemas", len(result.Schemas),
		"operations", len(ops),
		"boxed", len(result.Boxed),
		"warnings", diags.Count(diag.SeverityWarning))
	return result, nil
}

// buildIR creates an IR from an OpenAPI document using the naming settings of cfg.
func (s *Service) buildIR(doc *openapi.Document, cfg *config.Config) (ir.IR, error) {
	strategy, err := naming.ParseStrategy(cfg.NamingStrategy)
	if err != nil {
		return ir.IR{}, err
	}
	return BuildIR(doc, BuildOptions{
		Names:               naming.New(strategy, cfg.NameOverrides),
		FailOnNameCollision: cfg.ShouldFailOnNameCollision(),
		Logger:              s.logger,
	})
}

// filterIR filters the IR based on client configuration
func (s *Service) filterIR(fullIR ir.IR, client config.Client) (ir.IR, error) {
	include, exclude, err := compileTagFilters(client.IncludeTags, client.ExcludeTags)
	if err != nil {
		return ir.IR{}, err
	}
	s.logger.Debug("filtering operations", "client", client.Name, "tags", filterTags(collectTags(fullIR), include, exclude))

	// Filter services and operations based on their original tags
	filteredServices := make([]ir.IRService, 0)
	for _, service := range fullIR.Services {
		filteredOps := make([]ir.IROperation, 0)
		for _, op := range service.Operations {
			if shouldIncludeOperation(op.OriginalTags, include, exclude) {
				filteredOps = append(filteredOps, op)
			}
		}
		// Only include the service if it has at least one operation after filtering
		if len(filteredOps) > 0 {
			filteredService := service
			filteredService.Operations = filteredOps
			filteredServices = append(filteredServices, filteredService)
		}
	}

	// Components are shared by every client and are never filtered.
	filteredIR := fullIR
	filteredIR.Services = filteredServices
	return filteredIR, nil
}

// groupServices groups operations by tag. Services are sorted by tag;
// operations keep document order.
func groupServices(ops []ir.IROperation) []ir.IRService {
	servicesMap := map[string]*ir.IRService{}
	for _, op := range ops {
		if len(op.OriginalTags) == 0 {
			// consider untagged as "misc"
			op.OriginalTags = []string{"misc"}
		}
		if _, ok := servicesMap[op.Tag]; !ok {
			servicesMap[op.Tag] = &ir.IRService{Tag: op.Tag}
		}
		servicesMap[op.Tag].Operations = append(servicesMap[op.Tag].Operations, op)
	}
	services := make([]ir.IRService, 0, len(servicesMap))
	for _, s := range servicesMap {
		services = append(services, *s)
	}
	sort.Slice(services, func(i, j int) bool { return services[i].Tag < services[j].Tag })
	return services
}

// collectTags extracts all tags from the operations of an IR
func collectTags(result ir.IR) []string {
	uniq := map[string]struct{}{}
	for _, op := range result.Operations() {
		for _, t := range op.OriginalTags {
			uniq[t] = struct{}{}
		}
	}
	out := make([]string, 0, len(uniq))
	for t := range uniq {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// compileTagFilters compiles regex patterns for tag filtering
func compileTagFilters(include, exclude []string) ([]*regexp.Regexp, []*regexp.Regexp, error) {
	inc := make([]*regexp.Regexp, 0, len(include))
	for _, p := range include {
		r, err := regexp.Compile(p)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid includeTags pattern %q: %w", p, err)
		}
		inc = append(inc, r)
	}
	exc := make([]*regexp.Regexp, 0, len(exclude))
	for _, p := range exclude {
		r, err := regexp.Compile(p)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid excludeTags pattern %q: %w", p, err)
		}
		exc = append(exc, r)
	}
	return inc, exc, nil
}

// shouldIncludeOperation determines if an operation should be included based on its original tags
func shouldIncludeOperation(originalTags []string, include, exclude []*regexp.Regexp) bool {
	// If no include patterns, assume all tags are initially included
	included := len(include) == 0

	// Check include patterns - operation is included if ANY of its tags match ANY include pattern
	if len(include) > 0 {
		for _, tag := range originalTags {
			for _, r := range include {
				if r.MatchString(tag) {
					included = true
					break
				}
			}
			if included {
				break
			}
		}
	}

	if !included {
		return false
	}

	// Check exclude patterns - operation is excluded if ANY of its tags match ANY exclude pattern
	for _, tag := range originalTags {
		for _, r := range exclude {
			if r.MatchString(tag) {
				return false
			}
		}
	}

	return true
}

// filterTags reports, for each tag, whether it passes the include/exclude patterns
func filterTags(all []string, include, exclude []*regexp.Regexp) map[string]bool {
	allowed := map[string]bool{}
	for _, t := range all {
		allowed[t] = shouldIncludeOperation([]string{t}, include, exclude)
	}
	return allowed
}
