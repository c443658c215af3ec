package pipeline

import (
	"fmt"
	"slices"

	"github.com/sirupsen/logrus"

	"github.com/iota-uz/orgsync/pkg/dataset"
	"github.com/iota-uz/orgsync/pkg/export"
	"github.com/iota-uz/orgsync/pkg/hierarchy"
	"github.com/iota-uz/orgsync/pkg/reconcile"
)

// Sheet names of the configuration workbook, one per synchronized entity.
const (
	SheetLocation     = "location"
	SheetOrganization = "organization"
	SheetUser         = "user"
	SheetUserGroup    = "usergroup"
)

const (
	LocationIdentifierColumn = "location_identifier"
	LocationAfterColumn      = "location_after"
	GroupNameColumn          = "group_name"
)

// Pipeline runs the full master-data synchronization: locations first, then
// the organization hierarchy, users, and user groups, each reconciled against
// its downloaded counterpart and exported as a change set.
type Pipeline struct {
	Paths              Paths
	ChunkSize          int
	RetirementSentinel string

	log logrus.FieldLogger
}

func New(paths Paths, chunkSize int, sentinel string, log logrus.FieldLogger) *Pipeline {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Pipeline{
		Paths:              paths,
		ChunkSize:          chunkSize,
		RetirementSentinel: sentinel,
		log:                log,
	}
}

// renameByPosition maps a table's columns onto the configured names by
// position. Downloaded exports carry system headers in the downstream
// system's locale; the sheet config defines the canonical names.
func renameByPosition(t *dataset.Table, names []string) (*dataset.Table, error) {
	cols := t.Columns()
	if len(cols) != len(names) {
		return nil, fmt.Errorf("expected %d columns, file has %d", len(names), len(cols))
	}
	out := dataset.New(names...)
	for i := 0; i < t.Len(); i++ {
		src := t.Row(i)
		row := make(dataset.Row, len(names))
		for j, col := range cols {
			row[names[j]] = src.Get(col)
		}
		out.Append(row)
	}
	return out, nil
}

// LoadPrepared loads the latest file matching pattern and conforms it to the
// sheet config: positional rename to the configured column names, then drop
// of the ignored columns.
func LoadPrepared(pattern, sheet string, cfg reconcile.SheetConfig) (*dataset.Table, error) {
	t, err := dataset.LoadTable(pattern, sheet)
	if err != nil {
		return nil, err
	}
	t, err = renameByPosition(t, cfg.ColumnNames)
	if err != nil {
		return nil, err
	}
	t.DropColumns(cfg.DropColumns...)
	return t, nil
}

// conformToConfig narrows a table to the sheet's key and compare columns,
// adding null columns for anything the source side does not carry (the
// disable flag, typically). Both join sides must end up with the same layout
// or the join rejects the run.
func conformToConfig(t *dataset.Table, cfg reconcile.SheetConfig) (*dataset.Table, error) {
	want := append(slices.Clone(cfg.KeyColumns), cfg.CompareColumns...)
	for _, col := range want {
		if !t.HasColumn(col) {
			t.AddColumn(col, dataset.Null())
		}
	}
	return t.Select(want...)
}

// reorderForOutput puts the configured columns first, in sheet order, and
// appends the run-generated columns (flag, after-columns) behind them.
func reorderForOutput(t *dataset.Table, cfg reconcile.SheetConfig) error {
	existing := t.Columns()
	var ordered []string
	for _, col := range cfg.ColumnNames {
		if slices.Contains(existing, col) {
			ordered = append(ordered, col)
		}
	}
	for _, col := range existing {
		if !slices.Contains(ordered, col) {
			ordered = append(ordered, col)
		}
	}
	return t.Reorder(ordered)
}

func (p *Pipeline) reconcileEntity(local, downloaded *dataset.Table, cfg reconcile.SheetConfig, userLike bool) (*dataset.Table, error) {
	opts := reconcile.ClassifyOptions{
		UserLike:           userLike,
		RetirementSentinel: p.RetirementSentinel,
	}
	return reconcile.ProcessMasterUpdate(local, downloaded, cfg, opts, p.log)
}

// ProcessLocations reconciles the location master and returns it (with the
// derived identifier column) for the downstream stages to join against.
func (p *Pipeline) ProcessLocations() (*dataset.Table, error) {
	log := p.log.WithField("entity", SheetLocation)
	log.Info("processing locations")

	locations, err := dataset.LoadTable(p.Paths.Location, "")
	if err != nil {
		return nil, err
	}

	locations.AddColumn(LocationIdentifierColumn, dataset.Null())
	for i := 0; i < locations.Len(); i++ {
		code := locations.Cell(i, reconcile.LocationCodeColumn)
		name := locations.Cell(i, "location_name")
		locations.SetCell(i, LocationIdentifierColumn,
			dataset.NewValue(code.String()+"_"+name.String()))
	}

	cfg, err := reconcile.LoadSheetConfig(p.Paths.ConfigWorkbook, SheetLocation)
	if err != nil {
		return nil, err
	}
	local, err := conformToConfig(locations.Clone(), cfg)
	if err != nil {
		return nil, err
	}
	downloaded, err := LoadPrepared(p.Paths.Download.Location, "", cfg)
	if err != nil {
		return nil, err
	}

	changes, err := p.reconcileEntity(local, downloaded, cfg, false)
	if err != nil {
		return nil, err
	}
	if err := UpdateToAfterColumn(changes, LocationAfterColumn, LocationIdentifierColumn); err != nil {
		return nil, err
	}
	if err := reorderForOutput(changes, cfg); err != nil {
		return nil, err
	}
	if _, err := export.SplitAndSave(changes, p.ChunkSize, p.Paths.Output.Location, log); err != nil {
		return nil, err
	}
	return locations, nil
}

// ProcessOrganizations builds the disambiguated org master, reconciles it and
// returns the master for the user stage to join against.
func (p *Pipeline) ProcessOrganizations(locations *dataset.Table) (*dataset.Table, error) {
	log := p.log.WithField("entity", SheetOrganization)
	log.Info("processing organizations")

	orgs, err := dataset.LoadTable(p.Paths.Organization, "")
	if err != nil {
		return nil, err
	}
	mapping, err := dataset.LoadTable(p.Paths.Mapping, "")
	if err != nil {
		return nil, err
	}

	master, err := hierarchy.CreateOrganization(orgs, mapping, log)
	if err != nil {
		return nil, err
	}
	master, err = reconcile.MergeLocation(master, locations)
	if err != nil {
		return nil, err
	}

	cfg, err := reconcile.LoadSheetConfig(p.Paths.ConfigWorkbook, SheetOrganization)
	if err != nil {
		return nil, err
	}
	local, err := conformToConfig(master.Clone(), cfg)
	if err != nil {
		return nil, err
	}
	downloaded, err := LoadPrepared(p.Paths.Download.Org, "", cfg)
	if err != nil {
		return nil, err
	}

	changes, err := p.reconcileEntity(local, downloaded, cfg, false)
	if err != nil {
		return nil, err
	}
	if err := reorderForOutput(changes, cfg); err != nil {
		return nil, err
	}
	if _, err := export.SplitAndSave(changes, p.ChunkSize, p.Paths.Output.Org, log); err != nil {
		return nil, err
	}
	return master, nil
}

// ProcessUsers joins the user roster with the location and organization
// masters and reconciles it with user-style retirement semantics. Returns the
// enriched roster for the user-group stage.
func (p *Pipeline) ProcessUsers(locations, orgMaster *dataset.Table) (*dataset.Table, error) {
	log := p.log.WithField("entity", SheetUser)
	log.Info("processing users")

	users, err := dataset.LoadTable(p.Paths.UserInfo, "")
	if err != nil {
		return nil, err
	}
	users, err = reconcile.MergeLocation(users, locations)
	if err != nil {
		return nil, err
	}
	users = dataset.InnerJoin(users, orgMaster, hierarchy.ColumnOrgCode)

	cfg, err := reconcile.LoadSheetConfig(p.Paths.ConfigWorkbook, SheetUser)
	if err != nil {
		return nil, err
	}
	local, err := conformToConfig(users.Clone(), cfg)
	if err != nil {
		return nil, err
	}
	downloaded, err := LoadPrepared(p.Paths.Download.User, "", cfg)
	if err != nil {
		return nil, err
	}

	changes, err := p.reconcileEntity(local, downloaded, cfg, true)
	if err != nil {
		return nil, err
	}
	if err := reorderForOutput(changes, cfg); err != nil {
		return nil, err
	}
	if _, err := export.SplitAndSave(changes, p.ChunkSize, p.Paths.Output.User, log); err != nil {
		return nil, err
	}
	return users, nil
}

// ProcessUserGroups melts the per-user group columns into the group master
// and reconciles it. A group name appearing at more than one rank is logged;
// the downstream system keys groups by name alone.
func (p *Pipeline) ProcessUserGroups(users *dataset.Table) error {
	log := p.log.WithField("entity", SheetUserGroup)
	log.Info("processing user groups")

	groups, err := ReshapeRankNames(users, "user_group", 3, 5)
	if err != nil {
		return err
	}

	ranksByName := make(map[string][]string)
	var nameOrder []string
	for i := 0; i < groups.Len(); i++ {
		name := groups.Cell(i, GroupNameColumn).String()
		if len(ranksByName[name]) == 0 {
			nameOrder = append(nameOrder, name)
		}
		ranksByName[name] = append(ranksByName[name], groups.Cell(i, "rank").String())
	}
	for _, name := range nameOrder {
		if ranks := ranksByName[name]; len(ranks) > 1 {
			log.Warnf("group name %q appears at ranks %v", name, ranks)
		}
	}

	cfg, err := reconcile.LoadSheetConfig(p.Paths.ConfigWorkbook, SheetUserGroup)
	if err != nil {
		return err
	}
	local, err := conformToConfig(groups, cfg)
	if err != nil {
		return err
	}
	downloaded, err := LoadPrepared(p.Paths.Download.UserGroup, "", cfg)
	if err != nil {
		return err
	}

	changes, err := p.reconcileEntity(local, downloaded, cfg, false)
	if err != nil {
		return err
	}
	if err := reorderForOutput(changes, cfg); err != nil {
		return err
	}
	_, err = export.SplitAndSave(changes, p.ChunkSize, p.Paths.Output.UserGroup, log)
	return err
}

// Run executes all four stages in dependency order.
func (p *Pipeline) Run() error {
	locations, err := p.ProcessLocations()
	if err != nil {
		return fmt.Errorf("locations: %w", err)
	}
	orgMaster, err := p.ProcessOrganizations(locations)
	if err != nil {
		return fmt.Errorf("organizations: %w", err)
	}
	users, err := p.ProcessUsers(locations, orgMaster)
	if err != nil {
		return fmt.Errorf("users: %w", err)
	}
	if err := p.ProcessUserGroups(users); err != nil {
		return fmt.Errorf("user groups: %w", err)
	}
	p.log.Info("synchronization run complete")
	return nil
}
