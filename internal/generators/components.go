package generators

// dataTableComponent, emptyStateComponent, statCardComponent, and
// confirmModalComponent are additively generated when their trigger
// patterns (table element, iteration operator, "stat" element) appear in
// the analyzed UI tree, gated on hasBackend (spec.md §4.6.3).

func dataTableComponent() string {
	return writeLines(
		`import React from "react";`,
		`import EmptyState from "./EmptyState.jsx";`,
		"",
		"export default function DataTable({ columns, rows, onRowClick }) {",
		"  if (!rows || rows.length === 0) {",
		`    return <EmptyState message="No data yet" />;`,
		"  }",
		"  return (",
		`    <table className="data-table">`,
		"      <thead>",
		"        <tr>",
		"          {columns.map((col) => (",
		"            <th key={col.key}>{col.label}</th>",
		"          ))}",
		"        </tr>",
		"      </thead>",
		"      <tbody>",
		"        {rows.map((row) => (",
		`          <tr key={row.id} onClick={() => onRowClick && onRowClick(row)}>`,
		"            {columns.map((col) => (",
		"              <td key={col.key}>{row[col.key]}</td>",
		"            ))}",
		"          </tr>",
		"        ))}",
		"      </tbody>",
		"    </table>",
		"  );",
		"}",
	)
}

func emptyStateComponent() string {
	return writeLines(
		`import React from "react";`,
		"",
		`export default function EmptyState({ message = "Nothing here yet" }) {`,
		"  return (",
		`    <div className="empty-state">`,
		"      <p>{message}</p>",
		"    </div>",
		"  );",
		"}",
	)
}

func statCardComponent() string {
	return writeLines(
		`import React from "react";`,
		"",
		"export default function StatCard({ label, value }) {",
		"  return (",
		`    <div className="stat-card">`,
		`      <div className="stat-label">{label}</div>`,
		`      <div className="stat-value">{value}</div>`,
		"    </div>",
		"  );",
		"}",
	)
}

func confirmModalComponent() string {
	return writeLines(
		`import React from "react";`,
		"",
		"export default function ConfirmModal({ open, title, onConfirm, onCancel }) {",
		"  if (!open) return null;",
		"  return (",
		`    <div className="modal-overlay">`,
		`      <div className="modal">`,
		"        <h2>{title}</h2>",
		`        <div className="modal-actions">`,
		`          <button type="button" onClick={onCancel}>Cancel</button>`,
		`          <button type="button" onClick={onConfirm}>Confirm</button>`,
		"        </div>",
		"      </div>",
		"    </div>",
		"  );",
		"}",
	)
}
